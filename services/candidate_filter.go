package services

import (
	"errors"
	"strings"

	"teammatch/models"
	"teammatch/repository"
	"teammatch/utils"
)

// ErrUserNotFound means the requesting user id does not resolve to a profile.
var ErrUserNotFound = errors.New("user not found")

// BuildCandidatePool resolves the requester and assembles the set of profiles
// eligible for scoring: everyone with a non-empty embedding except the
// requester, narrowed by the structured filters. All filters are conjunctive
// and empty filter values impose no constraint.
//
// limit > 0 caps the pool to the most recently updated candidates after
// filtering. This is a performance bound for recommend mode, not a
// correctness requirement.
func BuildCandidatePool(requesterID string, filters *models.SearchFilters, limit int) (*models.UserProfile, []*models.UserProfile, error) {
	requester, err := repository.GetUser(requesterID)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	eligible, err := repository.ListEligibleUsers()
	if err != nil {
		return nil, nil, err
	}

	pool := make([]*models.UserProfile, 0, len(eligible))
	for _, candidate := range eligible {
		if candidate.ID == requester.ID {
			continue
		}
		if !matchesFilters(candidate, filters) {
			continue
		}
		pool = append(pool, candidate)
	}

	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return requester, pool, nil
}

// matchesFilters applies the structured filters to one candidate.
func matchesFilters(u *models.UserProfile, filters *models.SearchFilters) bool {
	if filters == nil {
		return true
	}

	if college := strings.TrimSpace(filters.College); college != "" {
		if !strings.Contains(strings.ToLower(u.College), strings.ToLower(college)) {
			return false
		}
	}

	if location := strings.TrimSpace(filters.Location); location != "" {
		if !strings.Contains(strings.ToLower(u.Location), strings.ToLower(location)) {
			return false
		}
	}

	if domains := utils.NormalizeList(filters.DomainInterest); len(domains) > 0 {
		if !utils.Overlaps(u.DomainInterest, domains) {
			return false
		}
	}

	if skills := utils.SplitCommaList(filters.Skills); len(skills) > 0 {
		if !utils.Overlaps(u.Skills, skills) {
			return false
		}
	}

	// The year range only constrains when both bounds are present and sane.
	if len(filters.GradYearRange) == 2 {
		minYear, maxYear := filters.GradYearRange[0], filters.GradYearRange[1]
		if minYear > 0 && maxYear > 0 && minYear <= maxYear {
			if u.GraduationYear < minYear || u.GraduationYear > maxYear {
				return false
			}
		}
	}

	return true
}
