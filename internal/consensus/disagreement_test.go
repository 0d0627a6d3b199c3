package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdimurro/trlgauge/internal/models"
)

func TestDetectDisagreementsBelowThreshold(t *testing.T) {
	entries := []Entry{
		entry("r1", models.RoleDomainExpert, 4, models.SublevelB, 80),
		entry("r2", models.RoleTechnicalReviewer, 4, models.SublevelC, 70),
	}

	ds := DetectDisagreements(entries)
	assert.Empty(t, ds, "adjacent sub-levels are not a disagreement")
}

func TestDetectDisagreementsWholeLevels(t *testing.T) {
	entries := []Entry{
		entry("r1", models.RoleDomainExpert, 3, models.SublevelA, 80),
		entry("r2", models.RoleTechnicalReviewer, 5, models.SublevelA, 70),
	}

	ds := DetectDisagreements(entries)
	require.Len(t, ds, 1)
	d := ds[0]
	assert.Equal(t, "r1", d.ReviewerA)
	assert.Equal(t, "r2", d.ReviewerB)
	assert.Equal(t, 2.0, d.LevelDifference)
	assert.NotEmpty(t, d.ID)
	assert.Contains(t, d.Description, "TRL 3a")
	assert.Contains(t, d.Description, "TRL 5a")
	assert.False(t, d.Resolved)
	assert.True(t, IsSignificant(d, 0))
}

func TestDetectDisagreementsFractionalGapRoundsUp(t *testing.T) {
	// 4b vs 6a is a 1.67 encoded gap; it records as a two-level difference
	// and therefore counts as significant.
	entries := []Entry{
		entry("r1", models.RoleDomainExpert, 4, models.SublevelB, 80),
		entry("r2", models.RoleTechnicalReviewer, 6, models.SublevelA, 70),
	}

	ds := DetectDisagreements(entries)
	require.Len(t, ds, 1)
	assert.Equal(t, 2.0, ds[0].LevelDifference)
	assert.True(t, IsSignificant(ds[0], 0))
	assert.Contains(t, ds[0].Description, "1.67 level gap")
}

func TestDetectDisagreementsOneLevelNotSignificant(t *testing.T) {
	entries := []Entry{
		entry("r1", models.RoleDomainExpert, 4, models.SublevelA, 80),
		entry("r2", models.RoleTechnicalReviewer, 5, models.SublevelA, 70),
	}

	ds := DetectDisagreements(entries)
	require.Len(t, ds, 1)
	assert.Equal(t, 1.0, ds[0].LevelDifference)
	assert.False(t, IsSignificant(ds[0], 0))
	assert.True(t, IsSignificant(ds[0], 1.0), "per-assessment gap override applies")
}

func TestDetectDisagreementsAllPairs(t *testing.T) {
	entries := []Entry{
		entry("r1", models.RoleDomainExpert, 3, models.SublevelA, 80),
		entry("r2", models.RoleTechnicalReviewer, 4, models.SublevelA, 70),
		entry("r3", models.RoleGeneralReviewer, 5, models.SublevelA, 60),
	}

	ds := DetectDisagreements(entries)
	assert.Len(t, ds, 3, "every pair at least one level apart is recorded")
	assert.True(t, AnySignificant(ds, 0), "the 3a/5a pair is two levels apart")
}

func TestAnySignificantEmpty(t *testing.T) {
	assert.False(t, AnySignificant(nil, 0))
}
