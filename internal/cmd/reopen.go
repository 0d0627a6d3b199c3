package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewReopenCommand creates the "reopen" command: revive a finalized or
// archived assessment for further review.
func NewReopenCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reopen <assessment-id>",
		Short: "Reopen a finalized or archived assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			saved, err := e.mutate(args[0], func(ctx workflow.Context) (workflow.Context, error) {
				return workflow.ReopenAssessment(ctx, reason, cliActor)
			})
			if err != nil {
				return err
			}
			printState(saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "why the assessment is being reopened")
	cmd.MarkFlagRequired("reason")
	return cmd
}
