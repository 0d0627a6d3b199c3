package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/domaindata"
	"github.com/cdimurro/trlgauge/internal/scale"
)

// NewScaleCommand creates the "scale" command group: queries against the
// maturity scale itself, independent of any assessment.
func NewScaleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Query the maturity scale",
	}

	cmd.AddCommand(newScaleShowCommand())
	cmd.AddCommand(newScaleDurationCommand())
	cmd.AddCommand(newScaleRequirementsCommand())

	return cmd
}

// newScaleShowCommand shows a sub-level with its neighbors.
func newScaleShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <trl>",
		Short: "Show a sub-level, its encoding, and its neighbors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, sub, err := scale.Parse(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s (numeric %.2f)\n", scale.Format(level, sub), scale.Score(level, sub))
			if pl, ps, ok := scale.Previous(level, sub); ok {
				fmt.Printf("  previous: %s\n", scale.Format(pl, ps))
			} else {
				fmt.Println("  previous: none (bottom of scale)")
			}
			if nl, ns, ok := scale.Next(level, sub); ok {
				fmt.Printf("  next:     %s\n", scale.Format(nl, ns))
			} else {
				fmt.Println("  next:     none (top of scale)")
			}
			return nil
		},
	}
}

// newScaleDurationCommand sums the typical duration from 1a to a target.
func newScaleDurationCommand() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "duration <trl>",
		Short: "Estimate the cumulative duration to reach a sub-level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, sub, err := scale.Parse(args[0])
			if err != nil {
				return err
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			durations, err := domaindata.LoadDurations(filepath.Join(e.cfg.DataDir, "durations.yaml"))
			if err != nil {
				return err
			}

			months, err := scale.CumulativeDuration(durations, level, sub, scale.DurationVariant(variant))
			if err != nil {
				return err
			}
			fmt.Printf("1a through %s: %.1f months (%s estimate, %.1f years)\n",
				scale.Format(level, sub), months, variant, months/12)
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "min", "duration bound to sum (min or max)")
	return cmd
}

// newScaleRequirementsCommand lists evidence requirements and exit criteria.
func newScaleRequirementsCommand() *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "requirements <trl>",
		Short: "List evidence requirements and exit criteria for a sub-level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, sub, err := scale.Parse(args[0])
			if err != nil {
				return err
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			provider, err := domaindata.LoadProvider(filepath.Join(e.cfg.DataDir, "domains"))
			if err != nil {
				return err
			}

			fmt.Printf("Evidence requirements for %s:\n", scale.Format(level, sub))
			for _, r := range scale.Requirements(provider, domain, level, sub) {
				mark := "optional"
				if r.Required {
					mark = "required"
				}
				fmt.Printf("  [%s] %-12s %s\n", mark, r.Type, r.Description)
			}

			fmt.Println("Exit criteria:")
			for _, c := range scale.ExitCriteria(provider, domain, level, sub) {
				fmt.Printf("  - %s\n", c)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "domain whose specific requirements to include")
	return cmd
}
