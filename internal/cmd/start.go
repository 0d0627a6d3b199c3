package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewStartCommand creates the "start" command: begin the review.
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start <assessment-id>",
		Short: "Start the review once enough reviewers are assigned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			saved, err := e.mutate(args[0], func(ctx workflow.Context) (workflow.Context, error) {
				return workflow.StartReview(ctx, cliActor)
			})
			if err != nil {
				return err
			}
			printState(saved)
			return nil
		},
	}
}
