package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewResolveCommand creates the "resolve" command: mark one disagreement
// resolved. When the last one resolves, the assessment returns to
// pending_consensus for recalculation.
func NewResolveCommand() *cobra.Command {
	var resolution string

	cmd := &cobra.Command{
		Use:   "resolve <assessment-id> <disagreement-id>",
		Short: "Resolve a flagged disagreement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			saved, err := e.mutate(args[0], func(ctx workflow.Context) (workflow.Context, error) {
				return workflow.ResolveDisagreement(ctx, args[1], resolution, cliActor)
			})
			if err != nil {
				return err
			}
			printState(saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&resolution, "resolution", "", "how the disagreement was settled")
	cmd.MarkFlagRequired("resolution")
	return cmd
}
