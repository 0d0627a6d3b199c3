package domaindata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cdimurro/trlgauge/internal/models"
)

// Durations maps each sub-level to its typical duration estimate. It
// implements scale.DurationSource.
type Durations struct {
	table map[string]models.DurationEstimate
}

func durationKey(level int, sub models.Sublevel) string {
	return fmt.Sprintf("%d%s", level, sub)
}

// Estimate returns the duration estimate for a sub-level, if known.
func (d *Durations) Estimate(level int, sub models.Sublevel) (models.DurationEstimate, bool) {
	est, ok := d.table[durationKey(level, sub)]
	return est, ok
}

// defaultLevelDurations holds the built-in per-level estimates, in months.
// Each of a level's three sub-levels takes roughly a third of the level's
// span; early research levels are short, demonstration and deployment
// levels stretch out.
var defaultLevelDurations = map[int]models.DurationEstimate{
	1: {MinMonths: 3, MaxMonths: 6},
	2: {MinMonths: 3, MaxMonths: 9},
	3: {MinMonths: 6, MaxMonths: 12},
	4: {MinMonths: 6, MaxMonths: 15},
	5: {MinMonths: 9, MaxMonths: 18},
	6: {MinMonths: 12, MaxMonths: 24},
	7: {MinMonths: 12, MaxMonths: 30},
	8: {MinMonths: 18, MaxMonths: 36},
	9: {MinMonths: 24, MaxMonths: 48},
}

// DefaultDurations returns the built-in duration table.
func DefaultDurations() *Durations {
	d := &Durations{table: make(map[string]models.DurationEstimate, 27)}
	for level, est := range defaultLevelDurations {
		per := models.DurationEstimate{MinMonths: est.MinMonths / 3, MaxMonths: est.MaxMonths / 3}
		for _, sub := range []models.Sublevel{models.SublevelA, models.SublevelB, models.SublevelC} {
			d.table[durationKey(level, sub)] = per
		}
	}
	return d
}

// durationsFile is the on-disk shape of a duration override table.
type durationsFile struct {
	Durations []struct {
		Level     int             `yaml:"level"`
		Sublevel  models.Sublevel `yaml:"sublevel"`
		MinMonths float64         `yaml:"min_months"`
		MaxMonths float64         `yaml:"max_months"`
	} `yaml:"durations"`
}

// LoadDurations returns the built-in table with per-sublevel overrides from
// the given YAML file applied. A missing file returns the defaults.
func LoadDurations(path string) (*Durations, error) {
	d := DefaultDurations()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read durations file: %w", err)
	}

	var df durationsFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to parse durations file: %w", err)
	}
	for _, row := range df.Durations {
		d.table[durationKey(row.Level, row.Sublevel)] = models.DurationEstimate{
			MinMonths: row.MinMonths,
			MaxMonths: row.MaxMonths,
		}
	}
	return d, nil
}
