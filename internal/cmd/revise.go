package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewReviseCommand creates the "revise" command: withdraw a reviewer's
// score and return the assessment to active review.
func NewReviseCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "revise <assessment-id> <reviewer-id>",
		Short: "Request a revision of a reviewer's score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			saved, err := e.mutate(args[0], func(ctx workflow.Context) (workflow.Context, error) {
				return workflow.RequestRevision(ctx, args[1], reason, cliActor)
			})
			if err != nil {
				return err
			}
			printState(saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "why the revision is needed")
	return cmd
}
