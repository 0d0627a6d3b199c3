package models

// ReviewerRole determines how much weight a reviewer's score carries
// during aggregation.
type ReviewerRole string

const (
	RoleDomainExpert      ReviewerRole = "domain_expert"
	RoleTechnicalReviewer ReviewerRole = "technical_reviewer"
	RoleGeneralReviewer   ReviewerRole = "general_reviewer"
	RoleObserver          ReviewerRole = "observer"
)

// Weight returns the aggregation weight for the role.
// Unknown roles weigh the same as a general reviewer.
func (r ReviewerRole) Weight() float64 {
	switch r {
	case RoleDomainExpert:
		return 1.0
	case RoleTechnicalReviewer:
		return 0.8
	case RoleGeneralReviewer:
		return 0.6
	case RoleObserver:
		return 0.4
	default:
		return 0.6
	}
}

// Valid reports whether the role is one of the four known roles.
func (r ReviewerRole) Valid() bool {
	switch r {
	case RoleDomainExpert, RoleTechnicalReviewer, RoleGeneralReviewer, RoleObserver:
		return true
	}
	return false
}

// Reviewer is a participant in a review session.
type Reviewer struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Role      ReviewerRole `json:"role"`
	Expertise []string     `json:"expertise,omitempty"`
	Domains   []string     `json:"domains,omitempty"`
}

// UnknownReviewer returns the placeholder profile used when a reviewer id
// cannot be resolved through the directory.
func UnknownReviewer(id string) Reviewer {
	return Reviewer{
		ID:   id,
		Name: "Unknown",
		Role: RoleGeneralReviewer,
	}
}
