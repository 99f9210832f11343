package models

import "time"

// UserProfile is a hackathon participant profile. The slice fields and the
// embedding are stored as JSON columns on the users table.
type UserProfile struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Bio              string    `db:"bio" json:"bio"`
	Skills           []string  `db:"skills" json:"skills"`
	Interests        []string  `db:"interests" json:"interests"`
	PreferredRoles   []string  `db:"preferred_roles" json:"preferred_roles"`
	DomainInterest   []string  `db:"domain_interest" json:"domain_interest"`
	College          string    `db:"college" json:"college"`
	Location         string    `db:"location" json:"location"`
	GraduationYear   int       `db:"graduation_year" json:"graduation_year,omitempty"` // 0 means not set
	ProfileEmbedding []float64 `db:"profile_embedding" json:"-"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasEmbedding reports whether the profile carries a usable embedding.
// Profiles without one are excluded from similarity-based candidate pools.
func (u *UserProfile) HasEmbedding() bool {
	return len(u.ProfileEmbedding) > 0
}

// ProfileUpdate carries the editable profile fields of a PUT /api/profile request.
// Skills and interests may arrive as comma-separated strings from older clients,
// so they are normalized by the profile service before persisting.
type ProfileUpdate struct {
	Name           *string  `json:"name,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Interests      []string `json:"interests,omitempty"`
	PreferredRoles []string `json:"preferred_roles,omitempty"`
	DomainInterest []string `json:"domain_interest,omitempty"`
	College        *string  `json:"college,omitempty"`
	Location       *string  `json:"location,omitempty"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
}
