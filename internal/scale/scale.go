// Package scale defines the 9x3 ordinal maturity scale: the reversible
// numeric encoding used for aggregation arithmetic, adjacency navigation,
// and the canonical "TRL {level}{sublevel}" string form.
package scale

import (
	"fmt"
	"math"
	"regexp"

	"github.com/cdimurro/trlgauge/internal/models"
)

// Level bounds of the scale.
const (
	MinLevel = 1
	MaxLevel = 9
)

// Sublevels returns the three sub-levels in ascending order.
func Sublevels() []models.Sublevel {
	return []models.Sublevel{models.SublevelA, models.SublevelB, models.SublevelC}
}

// offset returns the fractional encoding offset of a sublevel.
// Unknown sublevels encode as 'a' so Score stays a total function.
func offset(s models.Sublevel) float64 {
	switch s {
	case models.SublevelB:
		return 0.33
	case models.SublevelC:
		return 0.67
	default:
		return 0
	}
}

// Score encodes a level/sublevel pair as a single numeric value suitable
// for averaging: level + 0 for 'a', 0.33 for 'b', 0.67 for 'c'.
func Score(level int, sub models.Sublevel) float64 {
	return float64(level) + offset(sub)
}

// Invert decodes a numeric value back to a level/sublevel pair. The level is
// the integer part clamped to [1,9]; the sublevel is chosen by thresholds on
// the fractional remainder: <0.17 -> a, <0.5 -> b, otherwise c.
//
// The thresholds are deliberately not symmetric around the encoding offsets:
// every one of the 27 exact encodings round-trips, but averaged values near a
// boundary are nudged toward 'b'/'c'. That smoothing is part of the scale's
// contract and must not be "corrected" to even thirds.
func Invert(numeric float64) (int, models.Sublevel) {
	level := int(math.Floor(numeric))
	remainder := numeric - math.Floor(numeric)
	if level < MinLevel {
		level = MinLevel
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	switch {
	case remainder < 0.17:
		return level, models.SublevelA
	case remainder < 0.5:
		return level, models.SublevelB
	default:
		return level, models.SublevelC
	}
}

// Next returns the sub-level immediately above the given one. Crossing a
// level boundary resets the sublevel to 'a'. The third return is false at
// the top of the scale (9c), which is terminal.
func Next(level int, sub models.Sublevel) (int, models.Sublevel, bool) {
	switch sub {
	case models.SublevelA:
		return level, models.SublevelB, true
	case models.SublevelB:
		return level, models.SublevelC, true
	default:
		if level >= MaxLevel {
			return 0, "", false
		}
		return level + 1, models.SublevelA, true
	}
}

// Previous returns the sub-level immediately below the given one. Crossing a
// level boundary resets the sublevel to 'c'. The third return is false at
// the bottom of the scale (1a), which is terminal.
func Previous(level int, sub models.Sublevel) (int, models.Sublevel, bool) {
	switch sub {
	case models.SublevelC:
		return level, models.SublevelB, true
	case models.SublevelB:
		return level, models.SublevelA, true
	default:
		if level <= MinLevel {
			return 0, "", false
		}
		return level - 1, models.SublevelC, true
	}
}

// Format renders the canonical display form, e.g. "TRL 4b".
func Format(level int, sub models.Sublevel) string {
	return fmt.Sprintf("TRL %d%s", level, sub)
}

var trlPattern = regexp.MustCompile(`^[1-9][abc]$`)

// Parse parses the compact "{level}{sublevel}" form, e.g. "4b".
func Parse(s string) (int, models.Sublevel, error) {
	if !trlPattern.MatchString(s) {
		return 0, "", fmt.Errorf("invalid TRL %q: expected a level 1-9 followed by a, b, or c", s)
	}
	return int(s[0] - '0'), models.Sublevel(s[1:]), nil
}
