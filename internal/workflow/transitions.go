package workflow

import (
	"fmt"
	"time"

	"github.com/cdimurro/trlgauge/internal/consensus"
	"github.com/cdimurro/trlgauge/internal/models"
	"github.com/cdimurro/trlgauge/internal/scale"
)

// AssignReviewers appends reviewers and their assignments and moves the
// context to awaiting_reviewers. Duplicate reviewer ids are not deduplicated
// here; callers own idempotency.
func AssignReviewers(ctx Context, reviewers []models.Reviewer, actor string) (Context, error) {
	if err := ctx.guard(ActionAssignReviewers); err != nil {
		return ctx, err
	}
	if len(reviewers) == 0 {
		return ctx, &PreconditionError{Action: ActionAssignReviewers, Reason: "no reviewers given"}
	}

	next := ctx.clone()
	for _, r := range reviewers {
		next.Session.Reviewers = append(next.Session.Reviewers, r)
		next.Assignments = append(next.Assignments, Assignment{
			ReviewerID: r.ID,
			Role:       r.Role,
			Deadline:   next.Deadline,
		})
	}
	next.transition(ActionAssignReviewers, ctx.State, StateAwaitingReviewers, actor,
		fmt.Sprintf("%d reviewer(s) assigned", len(reviewers)))
	return next, nil
}

// StartReview moves the context into active review once enough reviewers
// are assigned.
func StartReview(ctx Context, actor string) (Context, error) {
	if err := ctx.guard(ActionStartReview); err != nil {
		return ctx, err
	}
	if len(ctx.Session.Reviewers) < ctx.MinimumReviewers {
		return ctx, &PreconditionError{
			Action: ActionStartReview,
			Reason: fmt.Sprintf("need at least %d reviewers, have %d",
				ctx.MinimumReviewers, len(ctx.Session.Reviewers)),
		}
	}

	next := ctx.clone()
	next.Session.Status = models.SessionInProgress
	next.transition(ActionStartReview, ctx.State, StateReviewInProgress, actor,
		fmt.Sprintf("review started with %d reviewers", len(ctx.Session.Reviewers)))
	return next, nil
}

// SubmitScore upserts one reviewer's score. The context advances to
// pending_consensus once the completion condition holds: all reviewers have
// scored when RequireAllScores is set, or MinimumReviewers have otherwise.
func SubmitScore(ctx Context, reviewerID string, score models.MaturityScore) (Context, error) {
	if err := ctx.guard(ActionSubmitScore); err != nil {
		return ctx, err
	}
	if _, ok := ctx.Session.ReviewerByID(reviewerID); !ok {
		return ctx, &PreconditionError{
			Action: ActionSubmitScore,
			Reason: fmt.Sprintf("reviewer %q is not a member of the session", reviewerID),
		}
	}
	if err := score.Validate(); err != nil {
		return ctx, &PreconditionError{Action: ActionSubmitScore, Reason: err.Error()}
	}

	next := ctx.clone()
	next.Session.IndividualScores[reviewerID] = score

	to := StateReviewInProgress
	if next.scoresComplete() {
		to = StatePendingConsensus
	}
	next.transition(ActionSubmitScore, ctx.State, to, reviewerID,
		fmt.Sprintf("%s submitted %s", reviewerID, scale.Format(score.Level, score.Sublevel)))
	return next, nil
}

// scoresComplete reports whether enough scores are in to aggregate.
func (c Context) scoresComplete() bool {
	if c.RequireAllScores {
		return c.Session.ScoredCount() >= len(c.Session.Reviewers)
	}
	return c.Session.ScoredCount() >= c.MinimumReviewers
}

// RequestRevision withdraws one reviewer's score and returns the context to
// active review.
func RequestRevision(ctx Context, reviewerID, reason, actor string) (Context, error) {
	if err := ctx.guard(ActionRequestRevision); err != nil {
		return ctx, err
	}

	next := ctx.clone()
	delete(next.Session.IndividualScores, reviewerID)
	next.Session.Status = models.SessionInProgress
	next.transition(ActionRequestRevision, ctx.State, StateReviewInProgress, actor,
		fmt.Sprintf("revision requested from %s: %s", reviewerID, reason))
	return next, nil
}

// CalculateConsensusAndFinalize runs the consensus engine with the
// configured method, detects disagreements, and either finalizes the
// assessment or routes it to disagreement resolution when any disagreement
// reaches the significance cutoff.
func CalculateConsensusAndFinalize(ctx Context, actor string) (Context, error) {
	if err := ctx.guard(ActionCalculateConsensus); err != nil {
		return ctx, err
	}

	entries := ctx.entries()
	result, err := consensus.Calculate(ctx.ConsensusMethod, entries, consensus.Options{
		DelphiMaxRounds: ctx.DelphiMaxRounds,
		OutlierSigma:    ctx.DelphiOutlierSigma,
	})
	if err != nil {
		return ctx, &PreconditionError{Action: ActionCalculateConsensus, Reason: err.Error()}
	}

	next := ctx.clone()
	score := result.Score
	next.Session.ConsensusScore = &score
	next.Session.Disagreements = consensus.DetectDisagreements(entries)

	note := consensusNote(ctx.ConsensusMethod, result, len(entries))
	if consensus.AnySignificant(next.Session.Disagreements, ctx.SignificantGap) {
		// Session stays in progress until the disagreements are worked out.
		next.transition(ActionCalculateConsensus, ctx.State, StateDisagreementResolution, actor,
			note+fmt.Sprintf("; %d disagreement(s) require resolution", len(next.Session.Disagreements)))
		return next, nil
	}

	now := time.Now()
	next.Session.Status = models.SessionCompleted
	next.Session.CompletedAt = &now
	next.transition(ActionCalculateConsensus, ctx.State, StateFinalized, actor, note)
	return next, nil
}

// consensusNote builds the audit note for a consensus calculation.
func consensusNote(requested consensus.Method, result consensus.Result, reviewers int) string {
	if result.FellBack {
		return fmt.Sprintf("unknown consensus method %q, fell back to weighted average over %d reviewers",
			requested, reviewers)
	}
	if result.Method == consensus.MethodDelphi {
		return fmt.Sprintf("Delphi consensus after %d rounds with %d reviewers", result.Rounds, reviewers)
	}
	return fmt.Sprintf("%s consensus from %d reviewers", result.Method, reviewers)
}

// ResolveDisagreement marks one disagreement resolved. Once all are
// resolved the context returns to pending_consensus so the consensus can be
// recalculated.
func ResolveDisagreement(ctx Context, disagreementID, resolution, actor string) (Context, error) {
	if err := ctx.guard(ActionResolveDisagreement); err != nil {
		return ctx, err
	}

	next := ctx.clone()
	found := false
	allResolved := true
	for i := range next.Session.Disagreements {
		d := &next.Session.Disagreements[i]
		if d.ID == disagreementID {
			d.Resolved = true
			d.Resolution = resolution
			found = true
		}
		if !d.Resolved {
			allResolved = false
		}
	}
	if !found {
		return ctx, &PreconditionError{
			Action: ActionResolveDisagreement,
			Reason: fmt.Sprintf("no disagreement with id %q", disagreementID),
		}
	}

	to := StateDisagreementResolution
	note := fmt.Sprintf("disagreement %s resolved: %s", disagreementID, resolution)
	if allResolved {
		to = StatePendingConsensus
		note += "; all disagreements resolved"
	}
	next.transition(ActionResolveDisagreement, ctx.State, to, actor, note)
	return next, nil
}

// ArchiveAssessment moves a finalized assessment to the archived terminal
// state.
func ArchiveAssessment(ctx Context, actor string) (Context, error) {
	if err := ctx.guard(ActionArchive); err != nil {
		return ctx, err
	}

	next := ctx.clone()
	next.transition(ActionArchive, ctx.State, StateArchived, actor, "assessment archived")
	return next, nil
}

// ReopenAssessment revives a finalized or archived assessment. The consensus
// score and disagreements are cleared and the session returns to active
// review; individual scores are kept.
func ReopenAssessment(ctx Context, reason, actor string) (Context, error) {
	if err := ctx.guard(ActionReopen); err != nil {
		return ctx, err
	}

	next := ctx.clone()
	next.Session.ConsensusScore = nil
	next.Session.Disagreements = nil
	next.Session.Status = models.SessionInProgress
	next.Session.CompletedAt = nil
	next.transition(ActionReopen, ctx.State, StateReviewInProgress, actor,
		fmt.Sprintf("assessment reopened: %s", reason))
	return next, nil
}
