// Package workflow drives one review session through an explicit finite
// state machine. Every action is a pure function over an immutable Context
// snapshot: it validates the current state, derives a new snapshot, and
// appends an audit history entry. Persisting snapshots (and racing writers)
// is the caller's concern.
package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/cdimurro/trlgauge/internal/consensus"
	"github.com/cdimurro/trlgauge/internal/models"
)

// State is a node in the assessment lifecycle.
type State string

const (
	StateDraft                  State = "draft"
	StateAwaitingReviewers      State = "awaiting_reviewers"
	StateReviewInProgress       State = "review_in_progress"
	StatePendingConsensus       State = "pending_consensus"
	StateDisagreementResolution State = "disagreement_resolution"
	StateFinalized              State = "finalized"
	StateArchived               State = "archived"
)

// Action is an operation a caller can request against a context.
type Action string

const (
	ActionAssignReviewers     Action = "assign_reviewers"
	ActionStartReview         Action = "start_review"
	ActionSubmitScore         Action = "submit_score"
	ActionRequestRevision     Action = "request_revision"
	ActionCalculateConsensus  Action = "calculate_consensus"
	ActionResolveDisagreement Action = "resolve_disagreement"
	ActionArchive             Action = "archive"
	ActionReopen              Action = "reopen"
)

// legalActions is the full transition table: which actions each state admits.
var legalActions = map[State][]Action{
	StateDraft:                  {ActionAssignReviewers},
	StateAwaitingReviewers:      {ActionStartReview, ActionAssignReviewers},
	StateReviewInProgress:       {ActionSubmitScore, ActionRequestRevision},
	StatePendingConsensus:       {ActionCalculateConsensus, ActionRequestRevision},
	StateDisagreementResolution: {ActionResolveDisagreement, ActionRequestRevision},
	StateFinalized:              {ActionArchive, ActionReopen},
	StateArchived:               {ActionReopen},
}

// CanPerformAction reports whether the action is legal in the given state.
func CanPerformAction(state State, action Action) bool {
	for _, a := range legalActions[state] {
		if a == action {
			return true
		}
	}
	return false
}

// Assignment records one reviewer's engagement on an assessment.
type Assignment struct {
	ReviewerID string              `json:"reviewer_id"`
	Role       models.ReviewerRole `json:"role"`
	Deadline   *time.Time          `json:"deadline,omitempty"`
	Notified   bool                `json:"notified"`
}

// HistoryEntry is one line of the append-only audit trail.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	FromState State     `json:"from_state"`
	ToState   State     `json:"to_state"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// Options configures a new workflow context. Zero values select defaults:
// weighted-average consensus, 3 minimum reviewers, a 2.0-level significance
// cutoff, and a 5-round Delphi limit with 1.5-sigma trimming.
type Options struct {
	ConsensusMethod    consensus.Method
	MinimumReviewers   int
	RequireAllScores   bool
	Deadline           *time.Time
	SignificantGap     float64
	DelphiMaxRounds    int
	DelphiOutlierSigma float64
}

// Context is the aggregate root for one assessment's review lifecycle.
// Transition functions never mutate a Context in place; they return a
// derived snapshot.
type Context struct {
	AssessmentID       string                `json:"assessment_id"`
	State              State                 `json:"state"`
	Assignments        []Assignment          `json:"assignments"`
	Session            models.ReviewSession  `json:"session"`
	ConsensusMethod    consensus.Method      `json:"consensus_method"`
	MinimumReviewers   int                   `json:"minimum_reviewers"`
	RequireAllScores   bool                  `json:"require_all_scores"`
	Deadline           *time.Time            `json:"deadline,omitempty"`
	SignificantGap     float64               `json:"significant_gap"`
	DelphiMaxRounds    int                   `json:"delphi_max_rounds"`
	DelphiOutlierSigma float64               `json:"delphi_outlier_sigma"`
	History            []HistoryEntry        `json:"history"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	Version            int64                 `json:"version"` // bumped by the store on save
}

// NewContext creates a draft workflow context for an assessment.
func NewContext(assessmentID string, opts Options) Context {
	if opts.ConsensusMethod == "" {
		opts.ConsensusMethod = consensus.MethodWeightedAverage
	}
	if opts.MinimumReviewers <= 0 {
		opts.MinimumReviewers = 3
	}
	if opts.SignificantGap <= 0 {
		opts.SignificantGap = consensus.SignificantGap
	}
	if opts.DelphiMaxRounds <= 0 {
		opts.DelphiMaxRounds = 5
	}
	if opts.DelphiOutlierSigma <= 0 {
		opts.DelphiOutlierSigma = 1.5
	}

	now := time.Now()
	return Context{
		AssessmentID: assessmentID,
		State:        StateDraft,
		Session: models.ReviewSession{
			ID:               uuid.New().String(),
			AssessmentID:     assessmentID,
			IndividualScores: make(map[string]models.MaturityScore),
			Status:           models.SessionScheduled,
			CreatedAt:        now,
		},
		ConsensusMethod:    opts.ConsensusMethod,
		MinimumReviewers:   opts.MinimumReviewers,
		RequireAllScores:   opts.RequireAllScores,
		Deadline:           opts.Deadline,
		SignificantGap:     opts.SignificantGap,
		DelphiMaxRounds:    opts.DelphiMaxRounds,
		DelphiOutlierSigma: opts.DelphiOutlierSigma,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// clone returns a deep copy of the context for derivation.
func (c Context) clone() Context {
	out := c
	out.Assignments = append([]Assignment(nil), c.Assignments...)
	out.History = append([]HistoryEntry(nil), c.History...)
	out.Session = c.Session.Clone()
	if c.Deadline != nil {
		d := *c.Deadline
		out.Deadline = &d
	}
	return out
}

// entries returns the submitted scores paired with their reviewers, in
// session reviewer order. Consensus tie-breaks depend on this ordering.
func (c Context) entries() []consensus.Entry {
	out := make([]consensus.Entry, 0, len(c.Session.IndividualScores))
	for _, r := range c.Session.Reviewers {
		if score, ok := c.Session.IndividualScores[r.ID]; ok {
			out = append(out, consensus.Entry{Reviewer: r, Score: score})
		}
	}
	return out
}

// transition moves the derived context to a new state and appends the audit
// entry for it.
func (c *Context) transition(action Action, from, to State, actor, note string) {
	now := time.Now()
	c.State = to
	c.UpdatedAt = now
	c.History = append(c.History, HistoryEntry{
		ID:        uuid.New().String(),
		Action:    action,
		FromState: from,
		ToState:   to,
		Actor:     actor,
		Timestamp: now,
		Note:      note,
	})
}

// guard returns a TransitionError unless the action is legal in the current
// state.
func (c Context) guard(action Action) error {
	if !CanPerformAction(c.State, action) {
		return &TransitionError{Action: action, State: c.State}
	}
	return nil
}
