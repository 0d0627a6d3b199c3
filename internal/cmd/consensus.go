package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/scale"
	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewConsensusCommand creates the "consensus" command: aggregate the
// submitted scores and finalize or route to disagreement resolution.
func NewConsensusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "consensus <assessment-id>",
		Short: "Calculate consensus and finalize the assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			saved, err := e.mutate(args[0], func(ctx workflow.Context) (workflow.Context, error) {
				return workflow.CalculateConsensusAndFinalize(ctx, cliActor)
			})
			if err != nil {
				return err
			}

			if cs := saved.Session.ConsensusScore; cs != nil {
				fmt.Printf("Consensus: %s (confidence %d%%)\n",
					color.New(color.Bold).Sprint(scale.Format(cs.Level, cs.Sublevel)), cs.Confidence)
				fmt.Printf("  %s\n", cs.Justification)
			}
			if saved.State == workflow.StateDisagreementResolution {
				color.Yellow("%d disagreement(s) need resolution before finalizing:", len(saved.Session.Disagreements))
				for _, d := range saved.Session.Disagreements {
					fmt.Printf("  [%s] %s\n", d.ID, d.Description)
				}
			}
			printState(saved)
			return nil
		},
	}
}
