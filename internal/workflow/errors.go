package workflow

import (
	"fmt"
)

// TransitionError is returned when an action is attempted from a state that
// does not permit it. Both the action and the current state are named so the
// failure is never ambiguous.
type TransitionError struct {
	Action Action
	State  State
}

// Error implements the error interface for TransitionError.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("action %q is not allowed in state %q", e.Action, e.State)
}

// PreconditionError is returned when an action is legal in the current state
// but its inputs or the context fail a precondition.
type PreconditionError struct {
	Action Action
	Reason string
}

// Error implements the error interface for PreconditionError.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Reason)
}
