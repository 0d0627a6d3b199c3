package consensus

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/cdimurro/trlgauge/internal/models"
	"github.com/cdimurro/trlgauge/internal/scale"
)

// Disagreement thresholds, in levels. A pair of reviewers is flagged when
// their encoded scores differ by at least DetectionGap; SignificantGap is
// the default cutoff (on the rounded level difference) that routes a
// workflow to resolution, overridable per assessment.
const (
	DetectionGap   = 1.0
	SignificantGap = 2.0
)

// DetectDisagreements compares every unordered pair of submitted scores and
// emits a Disagreement for each pair whose encoded values differ by at least
// one full level. The recorded LevelDifference is the gap rounded to whole
// levels; the exact encoded gap appears in the description.
func DetectDisagreements(entries []Entry) []models.Disagreement {
	var out []models.Disagreement
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			diff := math.Abs(numeric(a) - numeric(b))
			if diff < DetectionGap {
				continue
			}
			out = append(out, models.Disagreement{
				ID:              uuid.New().String(),
				ReviewerA:       a.Reviewer.ID,
				ReviewerB:       b.Reviewer.ID,
				LevelDifference: math.Round(diff),
				Description: fmt.Sprintf("%s rated %s but %s rated %s (%.2f level gap)",
					a.Reviewer.Name, scale.Format(a.Score.Level, a.Score.Sublevel),
					b.Reviewer.Name, scale.Format(b.Score.Level, b.Score.Sublevel),
					diff),
				CreatedAt: time.Now(),
			})
		}
	}
	return out
}

// IsSignificant reports whether a disagreement is wide enough to require
// explicit resolution before the assessment can finalize.
func IsSignificant(d models.Disagreement, gap float64) bool {
	if gap <= 0 {
		gap = SignificantGap
	}
	return d.LevelDifference >= gap
}

// AnySignificant reports whether any disagreement in the list meets the gap.
func AnySignificant(ds []models.Disagreement, gap float64) bool {
	for _, d := range ds {
		if IsSignificant(d, gap) {
			return true
		}
	}
	return false
}
