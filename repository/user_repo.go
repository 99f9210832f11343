package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"teammatch/db"
	"teammatch/logger"
	"teammatch/models"
)

// =====================
// JSON column helpers
// =====================

// The slice fields and the embedding live in TEXT columns as JSON. An empty or
// NULL column decodes to an empty slice rather than an error so that partially
// filled legacy rows keep working.

func unmarshalStringList(ns sql.NullString) []string {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		logger.Debug("Failed to parse JSON list column", "value", ns.String, "error", err)
		return []string{}
	}
	return out
}

func unmarshalVector(ns sql.NullString) []float64 {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return []float64{}
	}
	var out []float64
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		logger.Debug("Failed to parse embedding column", "error", err)
		return []float64{}
	}
	return out
}

func marshalJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

const userColumns = `id, name, bio, skills, interests, preferred_roles, domain_interest,
        college, location, graduation_year, profile_embedding, updated_at`

func scanUser(scan func(dest ...interface{}) error) (*models.UserProfile, error) {
	var (
		u                                            models.UserProfile
		bio, college, location                       sql.NullString
		skills, interests, roles, domains, embedding sql.NullString
		gradYear                                     sql.NullInt64
	)
	err := scan(&u.ID, &u.Name, &bio, &skills, &interests, &roles, &domains,
		&college, &location, &gradYear, &embedding, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Bio = bio.String
	u.College = college.String
	u.Location = location.String
	u.GraduationYear = int(gradYear.Int64)
	u.Skills = unmarshalStringList(skills)
	u.Interests = unmarshalStringList(interests)
	u.PreferredRoles = unmarshalStringList(roles)
	u.DomainInterest = unmarshalStringList(domains)
	u.ProfileEmbedding = unmarshalVector(embedding)
	return &u, nil
}

// =====================
// User lookups
// =====================

// GetUser loads one user profile by id.
func GetUser(id string) (*models.UserProfile, error) {
	if id == "" {
		return nil, errors.New("invalid user id")
	}
	row := db.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return u, nil
}

// ListEligibleUsers returns all users carrying a non-empty embedding, most
// recently updated first. The SQL predicate weeds out the obvious empties;
// callers still check HasEmbedding after the JSON decode.
func ListEligibleUsers() ([]*models.UserProfile, error) {
	rows, err := db.DB.Query(`
        SELECT ` + userColumns + `
        FROM users
        WHERE profile_embedding IS NOT NULL
          AND profile_embedding != ''
          AND profile_embedding != '[]'
        ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.UserProfile, 0)
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			logger.Error("Failed to scan user row", "error", err)
			continue
		}
		if u.HasEmbedding() {
			users = append(users, u)
		}
	}
	return users, rows.Err()
}

// ListUsersWithoutEmbeddings returns profiles whose embedding is empty, for
// the scheduled backfill to rebuild.
func ListUsersWithoutEmbeddings() ([]*models.UserProfile, error) {
	rows, err := db.DB.Query(`
        SELECT ` + userColumns + `
        FROM users
        WHERE profile_embedding IS NULL
           OR profile_embedding = ''
           OR profile_embedding = '[]'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.UserProfile, 0)
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			logger.Error("Failed to scan user row", "error", err)
			continue
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// =====================
// Profile persistence
// =====================

// SaveProfile persists the editable profile fields together with the embedding
// in a single UPDATE, so the stored embedding can never get out of step with
// the text it was derived from.
func SaveProfile(u *models.UserProfile) error {
	res, err := db.DB.Exec(`
        UPDATE users
        SET name = ?, bio = ?, skills = ?, interests = ?, preferred_roles = ?,
            domain_interest = ?, college = ?, location = ?, graduation_year = ?,
            profile_embedding = ?, updated_at = NOW()
        WHERE id = ?`,
		u.Name, u.Bio,
		marshalJSON(u.Skills), marshalJSON(u.Interests),
		marshalJSON(u.PreferredRoles), marshalJSON(u.DomainInterest),
		u.College, u.Location, u.GraduationYear,
		marshalJSON(u.ProfileEmbedding),
		u.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateEmbedding replaces only the stored embedding for a user. Used by the
// backfill path where the profile text itself is unchanged.
func UpdateEmbedding(id string, embedding []float64) error {
	res, err := db.DB.Exec(`
        UPDATE users SET profile_embedding = ?, updated_at = NOW() WHERE id = ?`,
		marshalJSON(embedding), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
