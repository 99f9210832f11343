package services

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"teammatch/config"
	"teammatch/logger"
	"teammatch/models"
	"teammatch/utils"
)

var (
	// ErrProfileIncomplete means the requester has no embedding yet and must
	// update their profile before asking for recommendations.
	ErrProfileIncomplete = errors.New("profile incomplete: update your profile with skills and interests first")

	// ErrInvalidQuery means find mode was called with a blank search query.
	ErrInvalidQuery = errors.New("search query is required")
)

// scoringConcurrency bounds the parallel scoring workers per request. Each
// candidate's score is independent, so order of computation does not matter.
const scoringConcurrency = 8

// RecommendTeammates ranks candidates for requesterID by the multi-factor
// compatibility score and returns the configured top K along with run metrics.
// An empty result set after filtering is a normal outcome, not an error.
func RecommendTeammates(cfg *config.Config, requesterID string, filters *models.SearchFilters) ([]models.MatchResult, models.RecommendMetrics, error) {
	var metrics models.RecommendMetrics

	requester, pool, err := BuildCandidatePool(requesterID, filters, cfg.Match.PoolLimit)
	if err != nil {
		return nil, metrics, err
	}
	if !requester.HasEmbedding() {
		return nil, metrics, ErrProfileIncomplete
	}

	if len(pool) == 0 {
		logger.Info("No candidates matched filters", "requester_id", requesterID)
		return []models.MatchResult{}, metrics, nil
	}

	logger.Info("Computing recommendations", "requester_id", requesterID, "pool_size", len(pool))

	results := scoreConcurrently(cfg, requester, pool, filters)
	sortByScore(results)

	topK := cfg.Match.RecommendTopK
	if len(results) > topK {
		results = results[:topK]
	}

	metrics.TotalConsidered = len(pool)
	metrics.TotalRecommended = len(results)
	if len(results) > 0 {
		var sum float64
		for _, r := range results {
			sum += r.Score
		}
		metrics.AverageScore = sum / float64(len(results))
	}

	logger.Info("Recommendations generated", "requester_id", requesterID, "count", len(results))
	return results, metrics, nil
}

// FindTeammates ranks candidates against a free-text query by plain embedding
// similarity. This mode is a semantic search, not a compatibility match, so no
// multi-factor scoring applies. Returns the ranked top K and the total number
// of matches before truncation.
func FindTeammates(cfg *config.Config, requesterID, query string, filters *models.SearchFilters) ([]models.MatchResult, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, ErrInvalidQuery
	}

	queryEmbedding, err := EmbedText(cfg, query)
	if err != nil {
		return nil, 0, err
	}

	_, pool, err := BuildCandidatePool(requesterID, filters, 0)
	if err != nil {
		return nil, 0, err
	}
	if len(pool) == 0 {
		logger.Info("No teammates matched search criteria", "requester_id", requesterID)
		return []models.MatchResult{}, 0, nil
	}

	results := make([]models.MatchResult, 0, len(pool))
	for _, candidate := range pool {
		similarity := utils.CosineSimilarity(queryEmbedding, candidate.ProfileEmbedding)
		results = append(results, models.MatchResult{
			CandidateID:    candidate.ID,
			Name:           candidate.Name,
			Bio:            candidate.Bio,
			College:        candidate.College,
			Location:       candidate.Location,
			GraduationYear: candidate.GraduationYear,
			Skills:         candidate.Skills,
			Interests:      candidate.Interests,
			PreferredRoles: candidate.PreferredRoles,
			DomainInterest: candidate.DomainInterest,
			Similarity:     similarity,
			Score:          similarity,
		})
	}
	sortByScore(results)

	totalMatches := len(results)
	topK := cfg.Match.FindTopK
	if len(results) > topK {
		results = results[:topK]
	}

	logger.Info("Teammate search completed", "requester_id", requesterID,
		"query", query, "count", len(results), "total_matches", totalMatches)
	return results, totalMatches, nil
}

// scoreConcurrently scores every candidate in the pool with bounded
// concurrency. A candidate that fails to score is skipped and logged; one bad
// record must not abort the whole ranking.
func scoreConcurrently(cfg *config.Config, requester *models.UserProfile, pool []*models.UserProfile, filters *models.SearchFilters) []models.MatchResult {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, scoringConcurrency)

	var mu sync.Mutex
	results := make([]models.MatchResult, 0, len(pool))

	for _, candidate := range pool {
		wg.Add(1)
		semaphore <- struct{}{} // acquire semaphore

		go func(c *models.UserProfile) {
			defer wg.Done()
			defer func() { <-semaphore }() // release semaphore

			result, err := ScoreCandidate(cfg, requester, c, filters)
			if err != nil {
				logger.Error("Failed to score candidate, skipping", "candidate_id", c.ID, "error", err)
				return
			}
			mu.Lock()
			results = append(results, *result)
			mu.Unlock()
		}(candidate)
	}

	wg.Wait()
	return results
}

// sortByScore orders results by descending score. Equal scores fall back to
// candidate id so the ordering is deterministic rather than an accident of
// scoring completion order.
func sortByScore(results []models.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CandidateID < results[j].CandidateID
	})
}
