package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/consensus"
	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewCreateCommand creates the "create" command: a new draft assessment.
func NewCreateCommand() *cobra.Command {
	var (
		method       string
		minReviewers int
		requireAll   bool
		deadlineDays int
	)

	cmd := &cobra.Command{
		Use:   "create <assessment-id>",
		Short: "Create a draft assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			assessmentID := args[0]
			if _, err := e.store.Load(assessmentID); err == nil {
				return fmt.Errorf("assessment %q already exists", assessmentID)
			}

			opts := e.cfg.WorkflowOptions(time.Now())
			if method != "" {
				opts.ConsensusMethod = consensus.Method(method)
			}
			if minReviewers > 0 {
				opts.MinimumReviewers = minReviewers
			}
			if cmd.Flags().Changed("require-all") {
				opts.RequireAllScores = requireAll
			}
			if cmd.Flags().Changed("deadline-days") {
				if deadlineDays > 0 {
					d := time.Now().Add(time.Duration(deadlineDays) * 24 * time.Hour)
					opts.Deadline = &d
				} else {
					opts.Deadline = nil
				}
			}

			if opts.ConsensusMethod != "" && !opts.ConsensusMethod.Known() {
				e.log.Warnf("unknown consensus method %q will fall back to weighted average", opts.ConsensusMethod)
			}

			ctx := workflow.NewContext(assessmentID, opts)
			saved, err := e.store.Save(ctx)
			if err != nil {
				return err
			}
			printState(saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "consensus method (weighted_average, median, conservative, delphi)")
	cmd.Flags().IntVar(&minReviewers, "min-reviewers", 0, "minimum reviewers required to start the review")
	cmd.Flags().BoolVar(&requireAll, "require-all", false, "wait for every reviewer before consensus")
	cmd.Flags().IntVar(&deadlineDays, "deadline-days", 0, "review deadline in days from now (0 disables)")

	return cmd
}
