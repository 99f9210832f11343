package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teammatch/config"
	"teammatch/db"
	"teammatch/logger"
	"teammatch/models"
)

func TestMain(m *testing.M) {
	logger.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(logger.Logger)
	os.Exit(m.Run())
}

// ==========================
// Test Helper Functions
// ==========================

func newTestRouter(t *testing.T) (*chi.Mux, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	prev := db.DB
	db.DB = mockDB
	t.Cleanup(func() {
		db.DB = prev
		mockDB.Close()
	})

	cfg := &config.Config{}
	cfg.Match.RecommendTopK = 8
	cfg.Match.FindTopK = 15
	cfg.Match.PoolLimit = 50
	cfg.Team.MinUsers = 3
	cfg.Embedding.TimeoutSec = 2

	r := chi.NewRouter()
	RegisterRoutes(r, cfg)
	return r, mock
}

var testColumns = []string{
	"id", "name", "bio", "skills", "interests", "preferred_roles",
	"domain_interest", "college", "location", "graduation_year",
	"profile_embedding", "updated_at",
}

func addRow(rows *sqlmock.Rows, id string, embedding string) {
	rows.AddRow(id, "User "+id, "", "[]", "[]", "[]", "[]", "", "", 0, embedding, time.Now())
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (int, models.APIResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

// ==========================
// Endpoint Tests
// ==========================

func TestRecommendHandler_MissingRequesterID(t *testing.T) {
	r, _ := newTestRouter(t)

	status, resp := doJSON(t, r, http.MethodPost, "/api/teammates/recommend", `{}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.CodeMissingParams, resp.Code)
}

func TestRecommendHandler_MalformedBody(t *testing.T) {
	r, _ := newTestRouter(t)

	_, resp := doJSON(t, r, http.MethodPost, "/api/teammates/recommend", `{not json`)
	assert.Equal(t, models.CodeInvalidParams, resp.Code)
}

func TestRecommendHandler_UnknownUser(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery("FROM users WHERE id").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(testColumns))

	_, resp := doJSON(t, r, http.MethodPost, "/api/teammates/recommend",
		`{"requester_id":"ghost"}`)
	assert.Equal(t, models.CodeUserNotFound, resp.Code)
	assert.Equal(t, "user not found", resp.Message)
}

func TestRecommendHandler_IncompleteProfile(t *testing.T) {
	r, mock := newTestRouter(t)

	reqRows := sqlmock.NewRows(testColumns)
	addRow(reqRows, "u1", "[]")
	mock.ExpectQuery("FROM users WHERE id").WithArgs("u1").WillReturnRows(reqRows)

	eligible := sqlmock.NewRows(testColumns)
	addRow(eligible, "c1", "[0.1]")
	mock.ExpectQuery("ORDER BY updated_at DESC").WillReturnRows(eligible)

	_, resp := doJSON(t, r, http.MethodPost, "/api/teammates/recommend",
		`{"requester_id":"u1"}`)
	assert.Equal(t, models.CodeProfileIncomplete, resp.Code)
}

func TestRecommendHandler_Success(t *testing.T) {
	r, mock := newTestRouter(t)

	reqRows := sqlmock.NewRows(testColumns)
	addRow(reqRows, "u1", "[1,0]")
	mock.ExpectQuery("FROM users WHERE id").WithArgs("u1").WillReturnRows(reqRows)

	eligible := sqlmock.NewRows(testColumns)
	addRow(eligible, "c1", "[1,0]")
	addRow(eligible, "c2", "[0,1]")
	mock.ExpectQuery("ORDER BY updated_at DESC").WillReturnRows(eligible)

	status, resp := doJSON(t, r, http.MethodPost, "/api/teammates/recommend",
		`{"requester_id":"u1"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, models.CodeSuccess, resp.Code)

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var body models.RecommendResponse
	require.NoError(t, json.Unmarshal(payload, &body))

	require.Len(t, body.Recommended, 2)
	assert.Equal(t, "c1", body.Recommended[0].CandidateID)
	assert.Equal(t, 2, body.Metrics.TotalConsidered)
}

func TestFindHandler_BlankQuery(t *testing.T) {
	r, _ := newTestRouter(t)

	_, resp := doJSON(t, r, http.MethodPost, "/api/teammates/find",
		`{"requester_id":"u1","query":"  "}`)
	assert.Equal(t, models.CodeInvalidQuery, resp.Code)
}

func TestFormTeamsHandler_InsufficientUsers(t *testing.T) {
	r, mock := newTestRouter(t)

	eligible := sqlmock.NewRows(testColumns)
	addRow(eligible, "u1", "[1,0]")
	addRow(eligible, "u2", "[0,1]")
	mock.ExpectQuery("ORDER BY updated_at DESC").WillReturnRows(eligible)

	_, resp := doJSON(t, r, http.MethodGet, "/api/teammates/form-teams", "")
	assert.Equal(t, models.CodeInsufficientUsers, resp.Code)
}

func TestGetProfileHandler_UnknownUser(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery("FROM users WHERE id").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(testColumns))

	_, resp := doJSON(t, r, http.MethodGet, "/api/profile/ghost", "")
	assert.Equal(t, models.CodeUserNotFound, resp.Code)
}
