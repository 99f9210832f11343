package repository

import (
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teammatch/db"
	"teammatch/logger"
	"teammatch/models"
)

func TestMain(m *testing.M) {
	logger.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(logger.Logger)
	os.Exit(m.Run())
}

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	prev := db.DB
	db.DB = mockDB
	t.Cleanup(func() {
		db.DB = prev
		mockDB.Close()
	})
	return mock
}

var testColumns = []string{
	"id", "name", "bio", "skills", "interests", "preferred_roles",
	"domain_interest", "college", "location", "graduation_year",
	"profile_embedding", "updated_at",
}

func TestGetUser_DecodesJSONColumns(t *testing.T) {
	mock := newMockDB(t)

	rows := sqlmock.NewRows(testColumns).AddRow(
		"u1", "Alice", "builds things",
		`["React","Go"]`, `["hiking"]`, `["Backend"]`, `["fintech"]`,
		"MIT", "Boston", 2025,
		`[0.1,0.2]`, time.Now(),
	)
	mock.ExpectQuery("FROM users WHERE id").WithArgs("u1").WillReturnRows(rows)

	u, err := GetUser("u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, []string{"React", "Go"}, u.Skills)
	assert.Equal(t, []string{"hiking"}, u.Interests)
	assert.Equal(t, []string{"Backend"}, u.PreferredRoles)
	assert.Equal(t, []string{"fintech"}, u.DomainInterest)
	assert.Equal(t, 2025, u.GraduationYear)
	assert.Equal(t, []float64{0.1, 0.2}, u.ProfileEmbedding)
	assert.True(t, u.HasEmbedding())
}

func TestGetUser_NullAndMalformedColumns(t *testing.T) {
	mock := newMockDB(t)

	// Legacy rows can carry NULLs and broken JSON; they decode to empty
	// values instead of failing the whole lookup.
	rows := sqlmock.NewRows(testColumns).AddRow(
		"u1", "Alice", nil,
		nil, "", "not json", nil,
		nil, nil, nil,
		nil, time.Now(),
	)
	mock.ExpectQuery("FROM users WHERE id").WithArgs("u1").WillReturnRows(rows)

	u, err := GetUser("u1")
	require.NoError(t, err)

	assert.Empty(t, u.Bio)
	assert.Empty(t, u.Skills)
	assert.Empty(t, u.PreferredRoles)
	assert.Equal(t, 0, u.GraduationYear)
	assert.False(t, u.HasEmbedding())
}

func TestGetUser_EmptyID(t *testing.T) {
	_, err := GetUser("")
	assert.Error(t, err)
}

func TestGetUser_NoRows(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("FROM users WHERE id").WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := GetUser("ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListEligibleUsers_RechecksEmbeddingAfterDecode(t *testing.T) {
	mock := newMockDB(t)

	rows := sqlmock.NewRows(testColumns).
		AddRow("u1", "Alice", nil, "[]", "[]", "[]", "[]", nil, nil, nil, `[0.1]`, time.Now()).
		// SQL predicate let it through but the JSON decodes to nothing.
		AddRow("u2", "Bob", nil, "[]", "[]", "[]", "[]", nil, nil, nil, `not json`, time.Now())
	mock.ExpectQuery("ORDER BY updated_at DESC").WillReturnRows(rows)

	users, err := ListEligibleUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
}

func TestSaveProfile_PersistsAllFieldsAsJSON(t *testing.T) {
	mock := newMockDB(t)

	u := &models.UserProfile{
		ID:               "u1",
		Name:             "Alice",
		Bio:              "bio",
		Skills:           []string{"Go"},
		Interests:        []string{},
		PreferredRoles:   []string{"Backend"},
		DomainInterest:   []string{},
		College:          "MIT",
		Location:         "Boston",
		GraduationYear:   2025,
		ProfileEmbedding: []float64{0.5},
	}

	mock.ExpectExec("UPDATE users").
		WithArgs("Alice", "bio", `["Go"]`, "[]", `["Backend"]`, "[]",
			"MIT", "Boston", 2025, "[0.5]", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, SaveProfile(u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveProfile_MissingRow(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

	err := SaveProfile(&models.UserProfile{ID: "ghost"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUpdateEmbedding(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectExec("UPDATE users SET profile_embedding").
		WithArgs("[0.1,0.2]", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, UpdateEmbedding("u1", []float64{0.1, 0.2}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
