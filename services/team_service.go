package services

import (
	"errors"
	"math"

	"teammatch/config"
	"teammatch/logger"
	"teammatch/models"
	"teammatch/repository"
	"teammatch/utils"
)

// ErrInsufficientUsers means there are not enough eligible users to form a team.
var ErrInsufficientUsers = errors.New("not enough users to form teams")

// teamSize is fixed: the blended team score assumes trios (role diversity is
// measured against 3 distinct roles).
const teamSize = 3

// Blend weights for the per-trio score.
const (
	teamWeightSimilarity = 0.7
	teamWeightDiversity  = 0.3
)

// FormTeams loads the full eligible population and partitions it into
// balanced teams. Each formation run works on a fresh snapshot; concurrent
// runs over a changing population are independent of each other.
func FormTeams(cfg *config.Config) ([]models.Team, error) {
	users, err := repository.ListEligibleUsers()
	if err != nil {
		return nil, err
	}
	return FormTeamsForUsers(users, cfg.Team.MinUsers)
}

// FormTeamsForUsers greedily groups users into trios maximizing blended
// pairwise similarity and role diversity.
//
// Users are visited in input order. For each not-yet-assigned user i, every
// unassigned pair (j, k) with j, k > i is examined and the best-scoring trio
// is locked in. Pairwise similarities are precomputed once so the inner search
// never recomputes cosine. Leftover users that cannot complete a trio are
// omitted from the result, never padded into a partial team.
func FormTeamsForUsers(users []*models.UserProfile, minUsers int) ([]models.Team, error) {
	eligible := make([]*models.UserProfile, 0, len(users))
	for _, u := range users {
		if u.HasEmbedding() {
			eligible = append(eligible, u)
		}
	}

	if minUsers < teamSize {
		minUsers = teamSize
	}
	if len(eligible) < minUsers {
		return nil, ErrInsufficientUsers
	}

	n := len(eligible)
	matrix := buildSimilarityMatrix(eligible)

	used := make([]bool, n)
	teams := make([]models.Team, 0, n/teamSize)

	for i := 0; i < n; i++ {
		if used[i] {
			continue
		}

		bestScore := -1.0
		bestJ, bestK := -1, -1

		for j := i + 1; j < n; j++ {
			if used[j] {
				continue
			}
			for k := j + 1; k < n; k++ {
				if used[k] {
					continue
				}

				simAvg := (matrix[i][j] + matrix[i][k] + matrix[j][k]) / 3

				roles := utils.NormalizeList(append(append(
					append([]string{}, eligible[i].PreferredRoles...),
					eligible[j].PreferredRoles...),
					eligible[k].PreferredRoles...))
				diversity := float64(len(roles)) / teamSize

				score := teamWeightSimilarity*simAvg + teamWeightDiversity*diversity
				if score > bestScore {
					bestScore = score
					bestJ, bestK = j, k
				}
			}
		}

		if bestJ < 0 {
			continue // no complete trio left for this user
		}

		teams = append(teams, models.Team{
			Members: []models.TeamMember{
				toTeamMember(eligible[i]),
				toTeamMember(eligible[bestJ]),
				toTeamMember(eligible[bestK]),
			},
			TeamScore: math.Round(bestScore*1000) / 1000,
		})
		used[i], used[bestJ], used[bestK] = true, true, true
	}

	logger.Info("Team formation completed", "eligible_users", n, "teams", len(teams),
		"unassigned", n-len(teams)*teamSize)
	return teams, nil
}

// buildSimilarityMatrix precomputes pairwise cosine similarity for the whole
// population. O(n²) once, reused across the O(n³) greedy search.
func buildSimilarityMatrix(users []*models.UserProfile) [][]float64 {
	n := len(users)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := utils.CosineSimilarity(users[i].ProfileEmbedding, users[j].ProfileEmbedding)
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}
	return matrix
}

func toTeamMember(u *models.UserProfile) models.TeamMember {
	return models.TeamMember{
		ID:     u.ID,
		Name:   u.Name,
		Roles:  u.PreferredRoles,
		Skills: u.Skills,
	}
}
