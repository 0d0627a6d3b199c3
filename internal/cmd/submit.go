package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdimurro/trlgauge/internal/models"
	"github.com/cdimurro/trlgauge/internal/parser"
	"github.com/cdimurro/trlgauge/internal/scale"
	"github.com/cdimurro/trlgauge/internal/workflow"
)

// NewSubmitCommand creates the "submit" command: record one reviewer's
// score, either from a submission document or from flags.
func NewSubmitCommand() *cobra.Command {
	var (
		file          string
		reviewerID    string
		trl           string
		confidence    int
		justification string
	)

	cmd := &cobra.Command{
		Use:   "submit <assessment-id>",
		Short: "Submit a reviewer's score",
		Long: `Submit a reviewer's score, either from a Markdown submission document
(--file) or directly from flags (--reviewer, --trl, --confidence,
--justification).

Submission documents carry a YAML frontmatter block:

    ---
    reviewer: r-ahmed
    trl: 4b
    confidence: 80
    ---

    ## Justification

    Prototype validated in the lab...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			var score models.MaturityScore
			var reviewer string

			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open submission: %w", err)
				}
				defer f.Close()

				sub, err := parser.NewSubmissionParser().Parse(f)
				if err != nil {
					return err
				}
				reviewer = sub.ReviewerID
				score = sub.Score()
			} else {
				if reviewerID == "" || trl == "" {
					return fmt.Errorf("either --file or both --reviewer and --trl are required")
				}
				level, sub, err := scale.Parse(trl)
				if err != nil {
					return err
				}
				reviewer = reviewerID
				score = models.MaturityScore{
					Level:         level,
					Sublevel:      sub,
					Confidence:    confidence,
					Justification: justification,
					AssessedBy:    reviewerID,
				}
			}
			score.AssessedAt = time.Now()

			saved, err := e.mutate(args[0], func(ctx workflow.Context) (workflow.Context, error) {
				return workflow.SubmitScore(ctx, reviewer, score)
			})
			if err != nil {
				return err
			}
			e.log.Infof("recorded %s from %s", scale.Format(score.Level, score.Sublevel), reviewer)
			printState(saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to a Markdown submission document")
	cmd.Flags().StringVar(&reviewerID, "reviewer", "", "reviewer id")
	cmd.Flags().StringVar(&trl, "trl", "", "score in compact form, e.g. 4b")
	cmd.Flags().IntVar(&confidence, "confidence", 0, "reviewer confidence 0-100")
	cmd.Flags().StringVar(&justification, "justification", "", "rationale for the score")

	return cmd
}
