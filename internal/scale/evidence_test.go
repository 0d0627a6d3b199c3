package scale

import (
	"testing"

	"github.com/cdimurro/trlgauge/internal/models"
)

type stubProvider struct {
	reqs     []models.EvidenceRequirement
	criteria []string
}

func (s stubProvider) Requirements(domain string, level int, sub models.Sublevel) []models.EvidenceRequirement {
	return s.reqs
}

func (s stubProvider) ExitCriteria(domain string, level int, sub models.Sublevel) []string {
	return s.criteria
}

func countByType(reqs []models.EvidenceRequirement, et models.EvidenceType) int {
	n := 0
	for _, r := range reqs {
		if r.Type == et {
			n++
		}
	}
	return n
}

func TestRequirementsGeneric(t *testing.T) {
	tests := []struct {
		level         int
		wantTypes     []models.EvidenceType
		absentTypes   []models.EvidenceType
		wantRequired  []models.EvidenceType
		wantOptionals []models.EvidenceType
	}{
		{
			level:        1,
			wantTypes:    []models.EvidenceType{models.EvidenceDocument},
			absentTypes:  []models.EvidenceType{models.EvidenceData, models.EvidencePublication, models.EvidencePrototype, models.EvidenceVideo},
			wantRequired: []models.EvidenceType{models.EvidenceDocument},
		},
		{
			level:         4,
			wantTypes:     []models.EvidenceType{models.EvidenceDocument, models.EvidenceData, models.EvidencePublication},
			absentTypes:   []models.EvidenceType{models.EvidencePrototype, models.EvidenceVideo},
			wantRequired:  []models.EvidenceType{models.EvidenceDocument, models.EvidenceData},
			wantOptionals: []models.EvidenceType{models.EvidencePublication},
		},
		{
			level:         7,
			wantTypes:     []models.EvidenceType{models.EvidenceDocument, models.EvidenceData, models.EvidencePublication, models.EvidencePrototype, models.EvidenceVideo},
			wantRequired:  []models.EvidenceType{models.EvidenceDocument, models.EvidenceData, models.EvidencePrototype},
			wantOptionals: []models.EvidenceType{models.EvidencePublication, models.EvidenceVideo},
		},
	}

	for _, tt := range tests {
		reqs := Requirements(nil, "", tt.level, models.SublevelA)
		for _, et := range tt.wantTypes {
			if countByType(reqs, et) != 1 {
				t.Errorf("level %d: expected exactly one %s requirement", tt.level, et)
			}
		}
		for _, et := range tt.absentTypes {
			if countByType(reqs, et) != 0 {
				t.Errorf("level %d: did not expect a %s requirement", tt.level, et)
			}
		}
		byType := make(map[models.EvidenceType]models.EvidenceRequirement)
		for _, r := range reqs {
			byType[r.Type] = r
		}
		for _, et := range tt.wantRequired {
			if !byType[et].Required {
				t.Errorf("level %d: %s should be required", tt.level, et)
			}
		}
		for _, et := range tt.wantOptionals {
			if byType[et].Required {
				t.Errorf("level %d: %s should be optional", tt.level, et)
			}
		}
	}
}

func TestRequirementsMergesProvider(t *testing.T) {
	p := stubProvider{
		reqs: []models.EvidenceRequirement{
			{Type: models.EvidenceData, Description: "Clinical trial dataset", Required: true},
		},
		criteria: []string{"Regulatory pre-submission meeting held"},
	}

	reqs := Requirements(p, "biomedical", 4, models.SublevelB)
	generic := Requirements(nil, "biomedical", 4, models.SublevelB)
	if len(reqs) != len(generic)+1 {
		t.Fatalf("expected %d requirements, got %d", len(generic)+1, len(reqs))
	}
	last := reqs[len(reqs)-1]
	if last.Description != "Clinical trial dataset" {
		t.Errorf("provider requirement should follow generic ones, got %q", last.Description)
	}

	criteria := ExitCriteria(p, "biomedical", 4, models.SublevelB)
	if criteria[len(criteria)-1] != "Regulatory pre-submission meeting held" {
		t.Errorf("provider criterion should follow generic ones, got %v", criteria)
	}
}

func TestExitCriteriaBySublevel(t *testing.T) {
	tests := []struct {
		sub  models.Sublevel
		want string
	}{
		{models.SublevelA, "Initial feasibility at this level established"},
		{models.SublevelB, "Results reproduced by an independent party"},
		{models.SublevelC, "Readiness review for the next level passed"},
	}
	for _, tt := range tests {
		criteria := ExitCriteria(nil, "", 5, tt.sub)
		found := false
		for _, c := range criteria {
			if c == tt.want {
				found = true
			}
		}
		if !found {
			t.Errorf("sublevel %s: missing criterion %q in %v", tt.sub, tt.want, criteria)
		}
	}
}
