package services

import (
	"strings"
	"sync"

	"teammatch/config"
	"teammatch/logger"
	"teammatch/models"
	"teammatch/repository"
	"teammatch/utils"
)

// BuildEmbeddingText concatenates the profile fields that feed the embedding:
// bio, skills, interests, preferred roles, domain interests, college and
// location. Returns "" for a profile with no meaningful text.
func BuildEmbeddingText(u *models.UserProfile) string {
	parts := make([]string, 0)

	if bio := strings.TrimSpace(u.Bio); bio != "" {
		parts = append(parts, bio)
	}
	parts = append(parts, u.Skills...)
	parts = append(parts, u.Interests...)
	parts = append(parts, u.PreferredRoles...)
	parts = append(parts, u.DomainInterest...)
	if college := strings.TrimSpace(u.College); college != "" {
		parts = append(parts, college)
	}
	if location := strings.TrimSpace(u.Location); location != "" {
		parts = append(parts, location)
	}

	return strings.Join(parts, " ")
}

// GetProfile loads a user profile, mapping missing rows to ErrUserNotFound.
func GetProfile(id string) (*models.UserProfile, error) {
	u, err := repository.GetUser(id)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies the supplied field updates and regenerates the
// profile embedding from the updated text. The profile and its embedding are
// persisted together: if embedding generation fails for a profile that has
// meaningful text, the whole update is rejected so the stored vector can
// never go stale against the stored text. A profile left with no meaningful
// text gets its embedding cleared, which removes it from candidate pools.
func UpdateProfile(cfg *config.Config, id string, upd *models.ProfileUpdate) (*models.UserProfile, error) {
	u, err := GetProfile(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		u.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Bio != nil {
		u.Bio = strings.TrimSpace(*upd.Bio)
	}
	if upd.Skills != nil {
		u.Skills = utils.NormalizeList(upd.Skills)
	}
	if upd.Interests != nil {
		u.Interests = utils.NormalizeList(upd.Interests)
	}
	if upd.PreferredRoles != nil {
		u.PreferredRoles = utils.NormalizeList(upd.PreferredRoles)
	}
	if upd.DomainInterest != nil {
		u.DomainInterest = utils.NormalizeList(upd.DomainInterest)
	}
	if upd.College != nil {
		u.College = strings.TrimSpace(*upd.College)
	}
	if upd.Location != nil {
		u.Location = strings.TrimSpace(*upd.Location)
	}
	if upd.GraduationYear != nil {
		u.GraduationYear = *upd.GraduationYear
	}

	text := BuildEmbeddingText(u)
	if text == "" {
		logger.Info("Profile has no meaningful text, clearing embedding", "user_id", id)
		u.ProfileEmbedding = []float64{}
	} else {
		embedding, err := EmbedText(cfg, text)
		if err != nil {
			logger.Error("Embedding generation failed, rejecting profile update", "user_id", id, "error", err)
			return nil, err
		}
		u.ProfileEmbedding = embedding
		logger.Info("Profile embedding regenerated", "user_id", id, "dimensions", len(embedding))
	}

	if err := repository.SaveProfile(u); err != nil {
		if utils.IsSQLNoRowsError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// RebuildEmbedding regenerates the embedding for one user from their current
// profile text. Returns false when the profile has no meaningful text to
// embed. Used by the scheduled backfill.
func RebuildEmbedding(cfg *config.Config, u *models.UserProfile) (bool, error) {
	text := BuildEmbeddingText(u)
	if text == "" {
		return false, nil
	}

	embedding, err := EmbedText(cfg, text)
	if err != nil {
		return false, err
	}
	if err := repository.UpdateEmbedding(u.ID, embedding); err != nil {
		return false, err
	}
	return true, nil
}

// BackfillEmbeddings rebuilds embeddings for every user missing one, with
// bounded concurrency.
func BackfillEmbeddings(cfg *config.Config, concurrency int) error {
	users, err := repository.ListUsersWithoutEmbeddings()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		logger.Info("No users need embedding backfill")
		return nil
	}

	logger.Info("Starting embedding backfill", "count", len(users), "concurrency", concurrency)
	BackfillEmbeddingsWithConcurrency(cfg, users, concurrency)
	return nil
}

// BackfillEmbeddingsWithConcurrency rebuilds embeddings for the given users
// using a bounded number of concurrent workers.
func BackfillEmbeddingsWithConcurrency(cfg *config.Config, users []*models.UserProfile, concurrency int) {
	if concurrency <= 0 {
		concurrency = 10
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	var mu sync.Mutex
	processed, updated, skipped, failed := 0, 0, 0, 0

	for _, user := range users {
		wg.Add(1)
		semaphore <- struct{}{} // acquire semaphore

		go func(u *models.UserProfile) {
			defer wg.Done()
			defer func() { <-semaphore }() // release semaphore

			ok, err := RebuildEmbedding(cfg, u)
			mu.Lock()
			defer mu.Unlock()
			processed++
			if err != nil {
				failed++
				logger.Error("Failed to rebuild embedding", "user_id", u.ID, "error", err)
				return
			}
			if !ok {
				skipped++
				return
			}
			updated++
		}(user)
	}

	wg.Wait()
	logger.Info("Embedding backfill completed",
		"processed", processed,
		"updated", updated,
		"skipped", skipped,
		"failed", failed,
	)
}
