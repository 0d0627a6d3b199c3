package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand creates the "list" command: all stored assessments.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored assessments",
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
			if len(summaries) == 0 {
				fmt.Println("no assessments stored")
				return nil
			}

			fmt.Printf("%-24s %-24s %-8s %s\n", "ASSESSMENT", "STATE", "VERSION", "UPDATED")
			for _, s := range summaries {
				fmt.Printf("%-24s %-24s %-8d %s\n",
					s.AssessmentID, s.State, s.Version, s.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
