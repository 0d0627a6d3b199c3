package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/models"
	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewAssignCommand creates the "assign" command: add reviewers to an
// assessment. Reviewer ids resolve through the directory; unknown ids get
// the Unknown/general_reviewer placeholder.
func NewAssignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <assessment-id> <reviewer-id>...",
		Short: "Assign reviewers to an assessment",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			dir, err := e.directory()
			if err != nil {
				return err
			}

			reviewers := make([]models.Reviewer, 0, len(args)-1)
			for _, id := range args[1:] {
				if !dir.Known(id) {
					e.log.Warnf("reviewer %q not in directory, using placeholder profile", id)
				}
				reviewers = append(reviewers, dir.Resolve(id))
			}

			saved, err := e.mutate(args[0], func(ctx workflow.Context) (workflow.Context, error) {
				return workflow.AssignReviewers(ctx, reviewers, cliActor)
			})
			if err != nil {
				return err
			}
			printState(saved)
			return nil
		},
	}
	return cmd
}
