package consensus

import (
	"math"

	"github.com/cdimurro/trlgauge/internal/models"
)

// requiredMultiplier boosts the weight of evidence marked required.
const requiredMultiplier = 1.5

// unverifiedCredit is the fraction of weight a submitted-but-unverified
// evidence item earns.
const unverifiedCredit = 0.7

// EvidenceConfidence scores how complete the evidence base is for a claim,
// 0-100. Each requirement contributes its type weight (1.5x when required);
// submitted items earn full weight when verified and 70% otherwise.
// No requirements means no basis for confidence, so 0.
func EvidenceConfidence(reqs []models.EvidenceRequirement) int {
	var total, completed float64
	for _, r := range reqs {
		w := r.Type.BaseWeight()
		if r.Required {
			w *= requiredMultiplier
		}
		total += w
		if !r.Submitted {
			continue
		}
		if r.Verified {
			completed += w
		} else {
			completed += w * unverifiedCredit
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(completed / total * 100))
}

// Quality weights for the assessment-quality composite.
const (
	weightCoverage   = 0.2
	weightDiversity  = 0.2
	weightAgreement  = 0.3
	weightConfidence = 0.3
)

// QualityScore breaks down the composite assessment-quality number into its
// four factors, each on a 0-100 scale.
type QualityScore struct {
	Coverage   float64 `json:"coverage"`   // reviewer count vs. a 5-reviewer panel
	Diversity  float64 `json:"diversity"`  // distinct roles vs. the 4 defined roles
	Agreement  float64 `json:"agreement"`  // penalized 25 points per disagreement
	Confidence float64 `json:"confidence"` // the consensus score's own confidence
	Composite  float64 `json:"composite"`
}

// AssessmentQuality computes the weighted composite quality of an assessment
// from the reviewer entries, the detected disagreements, and the consensus
// score's confidence.
func AssessmentQuality(entries []Entry, disagreements []models.Disagreement, consensusConfidence int) QualityScore {
	roles := make(map[models.ReviewerRole]struct{})
	for _, e := range entries {
		roles[e.Reviewer.Role] = struct{}{}
	}

	q := QualityScore{
		Coverage:   math.Min(float64(len(entries))/5, 1) * 100,
		Diversity:  float64(len(roles)) / 4 * 100,
		Agreement:  math.Max(0, 100-25*float64(len(disagreements))),
		Confidence: float64(consensusConfidence),
	}
	q.Composite = q.Coverage*weightCoverage +
		q.Diversity*weightDiversity +
		q.Agreement*weightAgreement +
		q.Confidence*weightConfidence
	return q
}
