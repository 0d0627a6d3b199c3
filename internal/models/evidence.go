package models

// EvidenceType classifies an artifact expected before a level can be claimed.
type EvidenceType string

const (
	EvidenceDocument    EvidenceType = "document"
	EvidenceData        EvidenceType = "data"
	EvidencePublication EvidenceType = "publication"
	EvidenceVideo       EvidenceType = "video"
	EvidencePrototype   EvidenceType = "prototype"
)

// BaseWeight returns the contribution weight of the evidence type toward
// the completeness confidence calculation.
func (t EvidenceType) BaseWeight() float64 {
	switch t {
	case EvidenceDocument:
		return 0.15
	case EvidenceData:
		return 0.25
	case EvidencePublication:
		return 0.20
	case EvidenceVideo:
		return 0.10
	case EvidencePrototype:
		return 0.30
	default:
		return 0.15
	}
}

// EvidenceRequirement is one artifact expected for a level/sublevel claim,
// with its submission and verification state.
type EvidenceRequirement struct {
	Type        EvidenceType `json:"type" yaml:"type"`
	Description string       `json:"description" yaml:"description"`
	Required    bool         `json:"required" yaml:"required"`
	Submitted   bool         `json:"submitted" yaml:"submitted"`
	Verified    bool         `json:"verified" yaml:"verified"`
}

// DurationEstimate is the typical time span, in months, a technology spends
// at a single sub-level before advancing.
type DurationEstimate struct {
	MinMonths float64 `json:"min_months" yaml:"min_months"`
	MaxMonths float64 `json:"max_months" yaml:"max_months"`
}
