package workflow

import (
	"time"
)

// Progress summarizes how far a review has advanced.
type Progress struct {
	Total           int      `json:"total"`
	Submitted       int      `json:"submitted"`
	PercentComplete float64  `json:"percent_complete"`
	Pending         []string `json:"pending"`      // names of reviewers yet to score
	SubmittedBy     []string `json:"submitted_by"` // ids of reviewers who have scored, in session order
}

// ReviewProgress reports submission progress for the context's session.
func ReviewProgress(ctx Context) Progress {
	p := Progress{Total: len(ctx.Session.Reviewers)}
	for _, r := range ctx.Session.Reviewers {
		if ctx.Session.HasScored(r.ID) {
			p.Submitted++
			p.SubmittedBy = append(p.SubmittedBy, r.ID)
		} else {
			p.Pending = append(p.Pending, r.Name)
		}
	}
	if p.Total > 0 {
		p.PercentComplete = float64(p.Submitted) / float64(p.Total) * 100
	}
	return p
}

// IsDeadlinePassed reports whether the context's review deadline has passed.
// Contexts without a deadline never expire.
func IsDeadlinePassed(ctx Context) bool {
	return ctx.Deadline != nil && time.Now().After(*ctx.Deadline)
}

// OverdueAssignments returns the assignments whose deadline has passed
// without a submitted score. Intended to be polled by an external scheduler;
// no notification is sent from here.
func OverdueAssignments(ctx Context) []Assignment {
	now := time.Now()
	var out []Assignment
	for _, a := range ctx.Assignments {
		if a.Deadline == nil || !now.After(*a.Deadline) {
			continue
		}
		if ctx.Session.HasScored(a.ReviewerID) {
			continue
		}
		out = append(out, a)
	}
	return out
}
