package services

import (
	"errors"
	"fmt"
	"strings"

	"teammatch/config"
	"teammatch/models"
	"teammatch/utils"
)

// Scoring weights. The unboosted weights sum to 1.0 so scores stay comparable
// across candidates; changing one means re-normalizing the rest.
const (
	weightSimilarity       = 0.4
	weightSkillsComplement = 0.3
	weightRoleComplement   = 0.2
	weightDomainAlignment  = 0.1

	boostSameCollege  = 0.2
	boostSameLocation = 0.15
	boostDomainFilter = 0.1
)

// Match reason thresholds.
const (
	highCompatibilityThreshold   = 0.7
	goodMatchThreshold           = 0.5
	manyNewSkillsThreshold       = 0.7
	complementarySkillsThreshold = 0.3
)

// ScoreCandidate computes the multi-factor compatibility of candidate against
// requester. Filter boosts apply only for filters the caller explicitly
// supplied on this request. Returns an error for unusable candidate records;
// the caller skips those and keeps ranking.
func ScoreCandidate(cfg *config.Config, requester, candidate *models.UserProfile, filters *models.SearchFilters) (*models.MatchResult, error) {
	if candidate == nil {
		return nil, errors.New("nil candidate")
	}
	if !candidate.HasEmbedding() {
		return nil, fmt.Errorf("candidate %s has no embedding", candidate.ID)
	}

	// 1. Profile similarity.
	similarity := Similarity(cfg, requester.ProfileEmbedding, candidate.ProfileEmbedding)

	// 2. Skills complementarity: skills the candidate brings that the
	// requester lacks, saturating at 10.
	uniqueSkills := utils.Difference(candidate.Skills, requester.Skills)
	skillsComplementarity := float64(len(uniqueSkills)) / 10
	if skillsComplementarity > 1 {
		skillsComplementarity = 1
	}

	// 3. Role complementarity: some shared roles help a team understand each
	// other, but novel roles weigh more.
	sharedRoles := utils.Intersection(candidate.PreferredRoles, requester.PreferredRoles)
	uniqueRoles := utils.Difference(candidate.PreferredRoles, requester.PreferredRoles)
	roleDenom := len(candidate.PreferredRoles)
	if roleDenom < 1 {
		roleDenom = 1
	}
	roleComplementarity := (0.3*float64(len(sharedRoles)) + 0.7*float64(len(uniqueRoles))) / float64(roleDenom)

	// 4. Domain alignment.
	sharedDomains := utils.Intersection(candidate.DomainInterest, requester.DomainInterest)
	domainDenom := len(candidate.DomainInterest)
	if domainDenom < 1 {
		domainDenom = 1
	}
	domainAlignment := float64(len(sharedDomains)) / float64(domainDenom)

	// 5. Boosts for matches on explicitly requested filters.
	filterBoost := 1.0
	if filters != nil {
		if strings.TrimSpace(filters.College) != "" && candidate.College == requester.College {
			filterBoost += boostSameCollege
		}
		if strings.TrimSpace(filters.Location) != "" && candidate.Location == requester.Location {
			filterBoost += boostSameLocation
		}
		if len(filters.DomainInterest) > 0 && utils.Overlaps(candidate.DomainInterest, filters.DomainInterest) {
			filterBoost += boostDomainFilter
		}
	}

	score := (weightSimilarity*similarity +
		weightSkillsComplement*skillsComplementarity +
		weightRoleComplement*roleComplementarity +
		weightDomainAlignment*domainAlignment) * filterBoost

	return &models.MatchResult{
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

		Similarity:            similarity,
		SkillsComplementarity: skillsComplementarity,
		RoleComplementarity:   roleComplementarity,
		DomainAlignment:       domainAlignment,
		Score:                 score,
		MatchReasons: buildMatchReasons(requester, candidate, similarity,
			skillsComplementarity, uniqueSkills, sharedRoles, uniqueRoles, sharedDomains),
	}, nil
}

// buildMatchReasons turns the sub-scores into at most four short human-readable
// reasons, in a fixed precedence order.
func buildMatchReasons(requester, candidate *models.UserProfile,
	similarity, skillsComplementarity float64,
	uniqueSkills, sharedRoles, uniqueRoles, sharedDomains []string) []string {

	reasons := make([]string, 0, 4)

	if similarity > highCompatibilityThreshold {
		reasons = append(reasons, "High profile compatibility")
	} else if similarity > goodMatchThreshold {
		reasons = append(reasons, "Good profile match")
	}

	if skillsComplementarity > manyNewSkillsThreshold {
		reasons = append(reasons, "Brings many new skills")
	} else if skillsComplementarity > complementarySkillsThreshold {
		reasons = append(reasons, "Offers complementary skills")
	}

	if len(uniqueSkills) > 0 {
		reasons = append(reasons, "Adds skills: "+strings.Join(firstN(uniqueSkills, 3), ", "))
	}
	if len(sharedRoles) > 0 {
		reasons = append(reasons, "Shared roles: "+strings.Join(firstN(sharedRoles, 2), ", "))
	}
	if len(uniqueRoles) > 0 {
		reasons = append(reasons, "New roles: "+strings.Join(firstN(uniqueRoles, 2), ", "))
	}
	if len(sharedDomains) > 0 {
		reasons = append(reasons, "Shared interests: "+strings.Join(firstN(sharedDomains, 2), ", "))
	}

	if candidate.College != "" && requester.College != "" && candidate.College == requester.College {
		reasons = append(reasons, "Same college")
	}
	if candidate.Location != "" && requester.Location != "" && candidate.Location == requester.Location {
		reasons = append(reasons, "Same location")
	}

	if len(reasons) > 4 {
		reasons = reasons[:4]
	}
	return reasons
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
