package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdimurro/trlgauge/internal/models"
)

func TestDelphiFewReviewersDegradesToWeightedAverage(t *testing.T) {
	entries := []Entry{
		entry("r1", models.RoleDomainExpert, 4, models.SublevelB, 80),
		entry("r2", models.RoleDomainExpert, 4, models.SublevelC, 60),
	}

	score, rounds, err := Delphi(entries, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, rounds)

	want, err := WeightedAverage(entries)
	require.NoError(t, err)
	assert.Equal(t, want.Level, score.Level)
	assert.Equal(t, want.Sublevel, score.Sublevel)
	assert.Equal(t, want.Confidence, score.Confidence)
}

func TestDelphiStopsImmediatelyWhenTight(t *testing.T) {
	// Identical scores have zero deviation, so the first round converges.
	entries := []Entry{
		entry("r1", models.RoleGeneralReviewer, 4, models.SublevelB, 70),
		entry("r2", models.RoleGeneralReviewer, 4, models.SublevelB, 80),
		entry("r3", models.RoleGeneralReviewer, 4, models.SublevelB, 90),
	}

	score, rounds, err := Delphi(entries, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, rounds)
	assert.Equal(t, 4, score.Level)
	assert.Equal(t, models.SublevelB, score.Sublevel)
	assert.Equal(t, "Delphi consensus after 1 rounds with 3 reviewers", score.Justification)
}

func TestDelphiTrimsOutlier(t *testing.T) {
	// Three reviewers cluster at level 4; the fourth claims 9a and sits
	// beyond 1.5 deviations from the round-one mean, so it is discarded.
	// The survivors converge in round two.
	entries := []Entry{
		entry("r1", models.RoleGeneralReviewer, 4, models.SublevelA, 80),
		entry("r2", models.RoleGeneralReviewer, 4, models.SublevelB, 70),
		entry("r3", models.RoleGeneralReviewer, 4, models.SublevelA, 80),
		entry("r4", models.RoleGeneralReviewer, 9, models.SublevelA, 90),
	}

	score, rounds, err := Delphi(entries, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, rounds)
	assert.Equal(t, 4, score.Level)
	assert.Equal(t, models.SublevelA, score.Sublevel)
	assert.Equal(t, 77, score.Confidence, "confidence averaged over survivors only")
	assert.Equal(t, "Delphi consensus after 2 rounds with 3 reviewers", score.Justification)
}

func TestDelphiRespectsMaxRounds(t *testing.T) {
	entries := []Entry{
		entry("r1", models.RoleGeneralReviewer, 1, models.SublevelA, 50),
		entry("r2", models.RoleGeneralReviewer, 5, models.SublevelA, 50),
		entry("r3", models.RoleGeneralReviewer, 9, models.SublevelA, 50),
	}

	_, rounds, err := Delphi(entries, Options{DelphiMaxRounds: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, rounds)
}

func TestDelphiNeverDropsBelowTwoReviewers(t *testing.T) {
	// An aggressive sigma would trim everyone; the engine must keep the two
	// entries closest to the mean instead.
	entries := []Entry{
		entry("r1", models.RoleGeneralReviewer, 1, models.SublevelA, 50),
		entry("r2", models.RoleGeneralReviewer, 5, models.SublevelA, 60),
		entry("r3", models.RoleGeneralReviewer, 9, models.SublevelA, 70),
	}

	score, _, err := Delphi(entries, Options{OutlierSigma: 0.01})
	require.NoError(t, err)
	assert.NotZero(t, score.Level)
	assert.Contains(t, score.Justification, "with 2 reviewers")
}

func TestDelphiEmpty(t *testing.T) {
	_, rounds, err := Delphi(nil, Options{})
	assert.ErrorIs(t, err, ErrNoScores)
	assert.Zero(t, rounds)
}
