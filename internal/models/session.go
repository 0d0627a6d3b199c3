package models

import (
	"time"
)

// SessionStatus tracks the lifecycle of a review session.
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// ReviewSession holds the reviewers, their individual scores, and the
// aggregation outcome for one assessment.
type ReviewSession struct {
	ID               string                   `json:"id"`
	AssessmentID     string                   `json:"assessment_id"`
	Reviewers        []Reviewer               `json:"reviewers"`
	IndividualScores map[string]MaturityScore `json:"individual_scores"` // reviewer id -> score
	ConsensusScore   *MaturityScore           `json:"consensus_score,omitempty"`
	Disagreements    []Disagreement           `json:"disagreements,omitempty"`
	Status           SessionStatus            `json:"status"`
	CreatedAt        time.Time                `json:"created_at"`
	CompletedAt      *time.Time               `json:"completed_at,omitempty"`
}

// ReviewerByID returns the reviewer with the given id, if present.
func (s *ReviewSession) ReviewerByID(id string) (Reviewer, bool) {
	for _, r := range s.Reviewers {
		if r.ID == id {
			return r, true
		}
	}
	return Reviewer{}, false
}

// HasScored reports whether the reviewer has an active score in the session.
func (s *ReviewSession) HasScored(reviewerID string) bool {
	_, ok := s.IndividualScores[reviewerID]
	return ok
}

// ScoredCount returns the number of reviewers with submitted scores.
func (s *ReviewSession) ScoredCount() int {
	return len(s.IndividualScores)
}

// Clone returns a deep copy of the session. Transition functions operate on
// copies so a caller's snapshot is never mutated in place.
func (s ReviewSession) Clone() ReviewSession {
	out := s
	out.Reviewers = append([]Reviewer(nil), s.Reviewers...)
	out.IndividualScores = make(map[string]MaturityScore, len(s.IndividualScores))
	for id, score := range s.IndividualScores {
		out.IndividualScores[id] = score
	}
	out.Disagreements = append([]Disagreement(nil), s.Disagreements...)
	if s.ConsensusScore != nil {
		cs := *s.ConsensusScore
		out.ConsensusScore = &cs
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// Disagreement records a flagged pair of reviewers whose scores differ by at
// least one full level. Only the resolved/resolution fields change after
// creation.
type Disagreement struct {
	ID              string    `json:"id"`
	ReviewerA       string    `json:"reviewer_a"`
	ReviewerB       string    `json:"reviewer_b"`
	LevelDifference float64   `json:"level_difference"`
	Description     string    `json:"description"`
	Resolved        bool      `json:"resolved"`
	Resolution      string    `json:"resolution,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
