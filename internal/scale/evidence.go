package scale

import (
	"fmt"

	"github.com/cdimurro/trlgauge/internal/models"
)

// RequirementProvider supplies domain-specific evidence requirements and
// exit criteria for a level/sublevel. Implementations live outside the core
// (see internal/domaindata); a nil provider yields the generic lists only.
type RequirementProvider interface {
	Requirements(domain string, level int, sub models.Sublevel) []models.EvidenceRequirement
	ExitCriteria(domain string, level int, sub models.Sublevel) []string
}

// Requirements returns the generic evidence requirements for the level
// followed by whatever the domain provider contributes.
func Requirements(p RequirementProvider, domain string, level int, sub models.Sublevel) []models.EvidenceRequirement {
	reqs := baseRequirements(level, sub)
	if p != nil {
		reqs = append(reqs, p.Requirements(domain, level, sub)...)
	}
	return reqs
}

// ExitCriteria returns the generic exit criteria for the level followed by
// whatever the domain provider contributes.
func ExitCriteria(p RequirementProvider, domain string, level int, sub models.Sublevel) []string {
	criteria := baseExitCriteria(level, sub)
	if p != nil {
		criteria = append(criteria, p.ExitCriteria(domain, level, sub)...)
	}
	return criteria
}

// baseRequirements is the generic (domain-independent) evidence list. Higher
// levels demand progressively harder artifact classes.
func baseRequirements(level int, sub models.Sublevel) []models.EvidenceRequirement {
	reqs := []models.EvidenceRequirement{
		{
			Type:        models.EvidenceDocument,
			Description: fmt.Sprintf("Technical report covering the %s claim", Format(level, sub)),
			Required:    true,
		},
	}
	if level >= 3 {
		reqs = append(reqs, models.EvidenceRequirement{
			Type:        models.EvidenceData,
			Description: "Measured performance data from representative testing",
			Required:    true,
		})
	}
	if level >= 4 {
		reqs = append(reqs, models.EvidenceRequirement{
			Type:        models.EvidencePublication,
			Description: "Peer-reviewed or independently assessed publication",
			Required:    false,
		})
	}
	if level >= 6 {
		reqs = append(reqs, models.EvidenceRequirement{
			Type:        models.EvidencePrototype,
			Description: "Prototype demonstrated in a relevant environment",
			Required:    true,
		})
	}
	if level >= 7 {
		reqs = append(reqs, models.EvidenceRequirement{
			Type:        models.EvidenceVideo,
			Description: "Recorded demonstration under operational conditions",
			Required:    false,
		})
	}
	return reqs
}

// baseExitCriteria is the generic checklist a claim must satisfy before
// advancing past the given sub-level.
func baseExitCriteria(level int, sub models.Sublevel) []string {
	criteria := []string{
		fmt.Sprintf("All required evidence for %s submitted and verified", Format(level, sub)),
	}
	switch sub {
	case models.SublevelA:
		criteria = append(criteria, "Initial feasibility at this level established")
	case models.SublevelB:
		criteria = append(criteria, "Results reproduced by an independent party")
	case models.SublevelC:
		criteria = append(criteria, "Readiness review for the next level passed")
	}
	return criteria
}
