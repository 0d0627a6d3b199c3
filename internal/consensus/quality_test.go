package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cdimurro/trlgauge/internal/models"
)

func TestEvidenceConfidence(t *testing.T) {
	reqs := []models.EvidenceRequirement{
		{Type: models.EvidenceDocument, Required: true, Submitted: true, Verified: true},
		{Type: models.EvidenceData, Required: true, Submitted: true, Verified: false},
		{Type: models.EvidencePublication, Required: false, Submitted: false},
	}

	// document: 0.15*1.5 = 0.225 earned in full
	// data:     0.25*1.5 = 0.375, unverified so 70% = 0.2625
	// publication: 0.20 weight, nothing earned
	// 0.4875 / 0.8 = 61%
	assert.Equal(t, 61, EvidenceConfidence(reqs))
}

func TestEvidenceConfidenceAllVerified(t *testing.T) {
	reqs := []models.EvidenceRequirement{
		{Type: models.EvidenceDocument, Required: true, Submitted: true, Verified: true},
		{Type: models.EvidencePrototype, Submitted: true, Verified: true},
	}
	assert.Equal(t, 100, EvidenceConfidence(reqs))
}

func TestEvidenceConfidenceNothingSubmitted(t *testing.T) {
	reqs := []models.EvidenceRequirement{
		{Type: models.EvidenceDocument, Required: true},
		{Type: models.EvidenceData, Required: true},
	}
	assert.Equal(t, 0, EvidenceConfidence(reqs))
}

func TestEvidenceConfidenceNoRequirements(t *testing.T) {
	assert.Equal(t, 0, EvidenceConfidence(nil))
}

func TestAssessmentQuality(t *testing.T) {
	entries := []Entry{
		entry("r1", models.RoleDomainExpert, 4, models.SublevelB, 80),
		entry("r2", models.RoleTechnicalReviewer, 4, models.SublevelC, 70),
		entry("r3", models.RoleGeneralReviewer, 4, models.SublevelB, 75),
	}
	disagreements := []models.Disagreement{{ID: "d1", LevelDifference: 2}}

	q := AssessmentQuality(entries, disagreements, 80)
	assert.InDelta(t, 60, q.Coverage, 1e-9)
	assert.InDelta(t, 75, q.Diversity, 1e-9)
	assert.InDelta(t, 75, q.Agreement, 1e-9)
	assert.InDelta(t, 80, q.Confidence, 1e-9)
	assert.InDelta(t, 73.5, q.Composite, 1e-9)
}

func TestAssessmentQualityCoverageCaps(t *testing.T) {
	var entries []Entry
	for i := 0; i < 6; i++ {
		entries = append(entries, entry("r", models.RoleDomainExpert, 4, models.SublevelA, 80))
	}

	q := AssessmentQuality(entries, nil, 80)
	assert.InDelta(t, 100, q.Coverage, 1e-9, "coverage saturates at five reviewers")
	assert.InDelta(t, 25, q.Diversity, 1e-9, "one role out of four")
	assert.InDelta(t, 100, q.Agreement, 1e-9)
}

func TestAssessmentQualityHeavyDisagreement(t *testing.T) {
	entries := []Entry{
		entry("r1", models.RoleDomainExpert, 2, models.SublevelA, 40),
	}
	disagreements := make([]models.Disagreement, 5)

	q := AssessmentQuality(entries, disagreements, 40)
	assert.InDelta(t, 0, q.Agreement, 1e-9, "agreement floors at zero")
}
