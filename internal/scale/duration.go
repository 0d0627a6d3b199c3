package scale

import (
	"fmt"

	"github.com/cdimurro/trlgauge/internal/models"
)

// DurationVariant selects which bound of a duration estimate to sum.
type DurationVariant string

const (
	DurationMin DurationVariant = "min"
	DurationMax DurationVariant = "max"
)

// DurationSource supplies the typical-duration reference data for a
// sub-level. The data itself is external; see internal/domaindata for the
// built-in table and its YAML override.
type DurationSource interface {
	Estimate(level int, sub models.Sublevel) (models.DurationEstimate, bool)
}

// CumulativeDuration sums the duration estimate, in months, for every
// sub-level from 1a up to and including the target, using the requested
// bound. Sub-levels missing from the source contribute nothing.
func CumulativeDuration(src DurationSource, level int, sub models.Sublevel, variant DurationVariant) (float64, error) {
	if level < MinLevel || level > MaxLevel {
		return 0, fmt.Errorf("level %d out of range [%d,%d]", level, MinLevel, MaxLevel)
	}
	if !sub.Valid() {
		return 0, fmt.Errorf("invalid sublevel %q", sub)
	}
	if variant != DurationMin && variant != DurationMax {
		return 0, fmt.Errorf("unknown duration variant %q", variant)
	}

	target := Score(level, sub)
	total := 0.0
	l, s := MinLevel, models.SublevelA
	for Score(l, s) <= target {
		if est, ok := src.Estimate(l, s); ok {
			if variant == DurationMin {
				total += est.MinMonths
			} else {
				total += est.MaxMonths
			}
		}
		next, nextSub, ok := Next(l, s)
		if !ok {
			break
		}
		l, s = next, nextSub
	}
	return total, nil
}
