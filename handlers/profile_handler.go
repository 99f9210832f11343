package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"teammatch/config"
	"teammatch/models"
	"teammatch/services"
	"teammatch/utils"
)

// GetProfileHandler godoc
// @Summary Get a user profile
// @Description Returns the profile for the given user id
// @Tags profile
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "invalid parameters"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/profile/{id} [get]
func GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.ValidateUserID(w, id) {
		return
	}

	profile, err := services.GetProfile(id)
	if err != nil {
		writeTeammateError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"user":          profile,
		"has_embedding": profile.HasEmbedding(),
	})
}

// UpdateProfileHandler godoc
// @Summary Update a user profile
// @Description Applies profile field updates and regenerates the profile embedding.
// @Description The update is rejected when the embedding service is unavailable, so the
// @Description stored embedding never goes stale against the stored profile text.
// @Tags profile
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param request body models.ProfileUpdate true "profile fields"
// @Success 200 {object} models.APIResponse "success"
// @Failure 400 {object} models.APIResponse "invalid parameters"
// @Failure 500 {object} models.APIResponse "server error"
// @Router /api/profile/{id} [put]
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	id := chi.URLParam(r, "id")
	if !utils.ValidateUserID(w, id) {
		return
	}

	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.WriteErrorResponse(w, models.CodeInvalidParams, map[string]interface{}{})
		return
	}

	profile, err := services.UpdateProfile(cfg, id, &upd)
	if err != nil {
		writeTeammateError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"user":                profile,
		"embedding_generated": profile.HasEmbedding(),
	})
}
