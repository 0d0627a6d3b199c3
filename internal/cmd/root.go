// Package cmd wires the trlgauge CLI: creating assessments, driving them
// through the review workflow, and querying the maturity scale.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// configPath is the --config persistent flag value.
var configPath string

// NewRootCommand creates and returns the root cobra command for trlgauge.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trlgauge",
		Short: "Technology maturity assessment with multi-reviewer consensus",
		Long: `Trlgauge assesses technology maturity on a 27-point scale (9 levels x 3
sub-levels) and aggregates independent reviewer ratings into a defensible
consensus score.

Assessments move through an explicit workflow: draft, reviewer assignment,
review, consensus calculation, optional disagreement resolution, and an
archived, auditable result.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", ".trlgauge/config.yaml", "path to the config file")

	cmd.AddCommand(NewCreateCommand())
	cmd.AddCommand(NewAssignCommand())
	cmd.AddCommand(NewStartCommand())
	cmd.AddCommand(NewSubmitCommand())
	cmd.AddCommand(NewReviseCommand())
	cmd.AddCommand(NewConsensusCommand())
	cmd.AddCommand(NewResolveCommand())
	cmd.AddCommand(NewArchiveCommand())
	cmd.AddCommand(NewReopenCommand())
	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewOverdueCommand())
	cmd.AddCommand(NewScaleCommand())

	return cmd
}
