package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/store"
	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewArchiveCommand creates the "archive" command: move a finalized
// assessment to the archived terminal state and export its audit snapshot.
func NewArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <assessment-id>",
		Short: "Archive a finalized assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			saved, err := e.mutate(args[0], func(ctx workflow.Context) (workflow.Context, error) {
				return workflow.ArchiveAssessment(ctx, cliActor)
			})
			if err != nil {
				return err
			}

			path, err := store.ExportSnapshot(saved, e.cfg.SnapshotDir)
			if err != nil {
				return err
			}
			e.log.Infof("audit snapshot written to %s", path)
			printState(saved)
			return nil
		},
	}
}
