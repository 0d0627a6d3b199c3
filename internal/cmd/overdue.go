package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewOverdueCommand creates the "overdue" command: assignments past their
// deadline without a score, across all stored assessments. Intended for an
// external scheduler to poll; no notifications are sent from here.
func NewOverdueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List overdue review assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			summaries, err := e.store.List()
			if err != nil {
				return err
			}

			found := false
			for _, s := range summaries {
				ctx, err := e.store.Load(s.AssessmentID)
				if err != nil {
					return err
				}
				for _, a := range workflow.OverdueAssignments(ctx) {
					found = true
					fmt.Printf("%s  %s (%s), due %s\n",
						color.RedString(ctx.AssessmentID), a.ReviewerID, a.Role,
						a.Deadline.Format("2006-01-02"))
				}
			}
			if !found {
				fmt.Println("no overdue assignments")
			}
			return nil
		},
	}
}
