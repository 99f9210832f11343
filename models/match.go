package models

// SearchFilters are the optional structured filters accepted by the find and
// recommend endpoints. Absent or empty values impose no constraint.
type SearchFilters struct {
	College        string   `json:"college,omitempty"`         // case-insensitive substring
	Location       string   `json:"location,omitempty"`        // case-insensitive substring
	DomainInterest []string `json:"domain_interest,omitempty"` // at least one overlapping value
	Skills         string   `json:"skills,omitempty"`          // comma-separated, at least one overlapping skill
	GradYearRange  []int    `json:"grad_year_range,omitempty"` // [min, max] inclusive, both required
}

// MatchResult is one scored candidate in a recommendation or search response.
// Results are computed fresh on every request and never persisted.
type MatchResult struct {
	CandidateID    string   `json:"candidate_id"`
	Name           string   `json:"name"`
	Bio            string   `json:"bio,omitempty"`
	College        string   `json:"college,omitempty"`
	Location       string   `json:"location,omitempty"`
	GraduationYear int      `json:"graduation_year,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Interests      []string `json:"interests,omitempty"`
	PreferredRoles []string `json:"preferred_roles,omitempty"`
	DomainInterest []string `json:"domain_interest,omitempty"`

	Similarity            float64  `json:"similarity"`
	SkillsComplementarity float64  `json:"skills_complementarity,omitempty"`
	RoleComplementarity   float64  `json:"role_complementarity,omitempty"`
	DomainAlignment       float64  `json:"domain_alignment,omitempty"`
	Score                 float64  `json:"score"`
	MatchReasons          []string `json:"match_reasons,omitempty"`
}

// TeamMember is one member of an auto-formed team.
type TeamMember struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
	Skills []string `json:"skills"`
}

// Team is a balanced team produced by a formation run.
type Team struct {
	Members   []TeamMember `json:"members"`
	TeamScore float64      `json:"team_score"`
}
