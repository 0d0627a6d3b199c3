package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/consensus"
	"github.com/cdimurro/trlgauge/internal/scale"
	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewStatusCommand creates the "status" command: progress, scores,
// disagreements, quality, and audit history for one assessment.
func NewStatusCommand() *cobra.Command {
	var showHistory bool

	cmd := &cobra.Command{
		Use:   "status <assessment-id>",
		Short: "Show an assessment's progress and results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, err := e.store.Load(args[0])
			if err != nil {
				return err
			}

			printStatus(ctx, showHistory)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showHistory, "history", false, "include the audit history")
	return cmd
}

func printStatus(ctx workflow.Context, showHistory bool) {
	bold := color.New(color.Bold)

	bold.Printf("Assessment %s\n", ctx.AssessmentID)
	fmt.Printf("  State:    %s\n", color.CyanString(string(ctx.State)))
	fmt.Printf("  Method:   %s (min %d reviewer(s), require all: %v)\n",
		ctx.ConsensusMethod, ctx.MinimumReviewers, ctx.RequireAllScores)
	if ctx.Deadline != nil {
		deadline := ctx.Deadline.Format("2006-01-02")
		if workflow.IsDeadlinePassed(ctx) {
			deadline = color.RedString("%s (passed)", deadline)
		}
		fmt.Printf("  Deadline: %s\n", deadline)
	}

	p := workflow.ReviewProgress(ctx)
	fmt.Printf("  Reviews:  %d/%d submitted (%.0f%%)\n", p.Submitted, p.Total, p.PercentComplete)
	if len(p.Pending) > 0 {
		fmt.Printf("  Pending:  %s\n", strings.Join(p.Pending, ", "))
	}

	for _, r := range ctx.Session.Reviewers {
		score, ok := ctx.Session.IndividualScores[r.ID]
		if !ok {
			continue
		}
		fmt.Printf("    %-20s %s (confidence %d%%)\n",
			fmt.Sprintf("%s [%s]", r.Name, r.Role), scale.Format(score.Level, score.Sublevel), score.Confidence)
	}

	if cs := ctx.Session.ConsensusScore; cs != nil {
		bold.Printf("  Consensus: %s (confidence %d%%)\n", scale.Format(cs.Level, cs.Sublevel), cs.Confidence)

		entries := sessionEntries(ctx)
		q := consensus.AssessmentQuality(entries, ctx.Session.Disagreements, cs.Confidence)
		fmt.Printf("  Quality:   %.0f (coverage %.0f, diversity %.0f, agreement %.0f, confidence %.0f)\n",
			q.Composite, q.Coverage, q.Diversity, q.Agreement, q.Confidence)
	}

	for _, d := range ctx.Session.Disagreements {
		marker := color.YellowString("open")
		if d.Resolved {
			marker = color.GreenString("resolved")
		}
		fmt.Printf("  Disagreement [%s] (%s): %s\n", d.ID, marker, d.Description)
	}

	if showHistory {
		bold.Println("  History:")
		for _, h := range ctx.History {
			fmt.Printf("    %s  %-22s %s -> %s  (%s)",
				h.Timestamp.Format("2006-01-02 15:04:05"), h.Action, h.FromState, h.ToState, h.Actor)
			if h.Note != "" {
				fmt.Printf("  %s", h.Note)
			}
			fmt.Println()
		}
	}
}

// sessionEntries rebuilds the consensus entries from the session, in
// reviewer order.
func sessionEntries(ctx workflow.Context) []consensus.Entry {
	var entries []consensus.Entry
	for _, r := range ctx.Session.Reviewers {
		if score, ok := ctx.Session.IndividualScores[r.ID]; ok {
			entries = append(entries, consensus.Entry{Reviewer: r, Score: score})
		}
	}
	return entries
}
