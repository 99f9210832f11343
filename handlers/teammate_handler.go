package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"teammatch/config"
	_ "teammatch/docs" // swagger docs
	"teammatch/models"
	"teammatch/services"
	"teammatch/utils"
)

// FindTeammatesHandler godoc
// @Summary Search teammates by free-text query
// @Description Embeds the query and ranks filtered candidates by semantic similarity
// @Tags teammates
// @Accept json
// @Produce json
// @Param request body models.FindRequest true "search request"
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "invalid parameters"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/teammates/find [post]
func FindTeammatesHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	var req models.FindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{})
		return
	}
	if !utils.ValidateUserID(w, req.RequesterID) {
		return
	}

	results, totalMatches, err := services.FindTeammates(cfg, req.RequesterID, req.Query, req.Filters)
	if err != nil {
		writeTeammateError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, models.FindResponse{
		Results:      results,
		Count:        len(results),
		TotalMatches: totalMatches,
	})
}

// RecommendTeammatesHandler godoc
// @Summary Recommend compatible teammates
// @Description Ranks candidates for the requester by the weighted compatibility score
// @Tags teammates
// @Accept json
// @Produce json
// @Param request body models.RecommendRequest true "recommendation request"
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "invalid parameters"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/teammates/recommend [post]
func RecommendTeammatesHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{})
		return
	}
	if !utils.ValidateUserID(w, req.RequesterID) {
		return
	}

	recommended, metrics, err := services.RecommendTeammates(cfg, req.RequesterID, req.Filters)
	if err != nil {
		writeTeammateError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, models.RecommendResponse{
		Recommended: recommended,
		Metrics:     metrics,
	})
}

// FormTeamsHandler godoc
// @Summary Auto-form balanced teams
// @Description Greedily partitions all eligible users into balanced trios by similarity and role diversity
// @Tags teammates
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "not enough users"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/teammates/form-teams [get]
func FormTeamsHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	teams, err := services.FormTeams(cfg)
	if err != nil {
		writeTeammateError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, models.TeamsResponse{Teams: teams})
}

// writeTeammateError maps service-layer errors onto response codes.
func writeTeammateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.WriteErrorResponse(w, models.CodeUserNotFound, map[string]interface{}{})
	case errors.Is(err, services.ErrProfileIncomplete):
		utils.WriteErrorResponse(w, models.CodeProfileIncomplete, map[string]interface{}{})
	case errors.Is(err, services.ErrInvalidQuery):
		utils.WriteErrorResponse(w, models.CodeInvalidQuery, map[string]interface{}{})
	case errors.Is(err, services.ErrInsufficientUsers):
		utils.WriteErrorResponse(w, models.CodeInsufficientUsers, map[string]interface{}{})
	case errors.Is(err, services.ErrEmbeddingUnavailable):
		utils.WriteErrorResponse(w, models.CodeEmbeddingUnavailable, map[string]interface{}{})
	default:
		utils.WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
	}
}

func RegisterRoutes(r *chi.Mux, cfg *config.Config) {
	// Swagger docs
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/api/teammates/find", func(w http.ResponseWriter, r *http.Request) {
		FindTeammatesHandler(w, r, cfg)
	})

	r.Post("/api/teammates/recommend", func(w http.ResponseWriter, r *http.Request) {
		RecommendTeammatesHandler(w, r, cfg)
	})

	r.Get("/api/teammates/form-teams", func(w http.ResponseWriter, r *http.Request) {
		FormTeamsHandler(w, r, cfg)
	})

	r.Get("/api/profile/{id}", GetProfileHandler)

	r.Put("/api/profile/{id}", func(w http.ResponseWriter, r *http.Request) {
		UpdateProfileHandler(w, r, cfg)
	})
}
