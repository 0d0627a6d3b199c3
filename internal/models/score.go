package models

import (
	"errors"
	"fmt"
	"time"
)

// SystemAssessor is the AssessedBy value used for computed (consensus) scores.
const SystemAssessor = "system"

// Sublevel is one of the three sub-steps within a maturity level.
type Sublevel string

const (
	SublevelA Sublevel = "a"
	SublevelB Sublevel = "b"
	SublevelC Sublevel = "c"
)

// Valid reports whether the sublevel is one of a, b, c.
func (s Sublevel) Valid() bool {
	return s == SublevelA || s == SublevelB || s == SublevelC
}

// MaturityScore is a single rating on the 9x3 readiness scale.
type MaturityScore struct {
	Level         int       `json:"level"`          // 1-9
	Sublevel      Sublevel  `json:"sublevel"`       // a, b, c
	Confidence    int       `json:"confidence"`     // 0-100
	Justification string    `json:"justification"`  // Free-text rationale
	AssessedAt    time.Time `json:"assessed_at"`    // When the rating was made
	AssessedBy    string    `json:"assessed_by"`    // Reviewer id, or "system" for computed scores
}

// Validate checks the score against the scale invariants.
func (m MaturityScore) Validate() error {
	if m.Level < 1 || m.Level > 9 {
		return fmt.Errorf("level %d out of range [1,9]", m.Level)
	}
	if !m.Sublevel.Valid() {
		return fmt.Errorf("invalid sublevel %q", m.Sublevel)
	}
	if m.Confidence < 0 || m.Confidence > 100 {
		return fmt.Errorf("confidence %d out of range [0,100]", m.Confidence)
	}
	if m.AssessedBy == "" {
		return errors.New("assessed_by is required")
	}
	return nil
}
