package app

import (
	"sort"
	"strings"

	"maestro_marketplace/internal/matching/domain"
	"maestro_marketplace/pkg"
)

// Weighted multi-factor relevance scoring. Pure: no I/O, no state between
// calls, identical inputs give identical order-stable outputs.

const (
	categoryBonus   = 50
	exactTagBonus   = 15
	partialTagBonus = 5
	nameBonus       = 20
	descBonus       = 10
	locationBonus   = 20
	locationPenalty = 5
	verifiedBonus   = 10
	maxReviewBonus  = 10

	// hard exclusion for candidates a specific keyword clearly missed
	sentinelScore = -100
)

// MatchCandidates score every candidate against the criteria, drop
// non-positive scores, and return the rest ordered by score descending.
// Ties keep input order. If strict scoring empties the result and the
// criteria carry an effective category, all candidates of that category come
// back instead, ordered by raw rating.
func MatchCandidates(candidates []domain.Candidate, criteria domain.Criteria) []domain.Candidate {
	keyword := strings.TrimSpace(strings.ToLower(criteria.Keyword))
	checkCategory := criteria.EffectiveCategory()

	checkTags := pkg.LowerAll(criteria.Tags)
	if criteria.AIAnalysis != nil {
		checkTags = append(checkTags, pkg.LowerAll(criteria.AIAnalysis.RelevantTags)...)
	}

	matched := make([]domain.Candidate, 0, len(candidates))
	scores := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		if s := scoreCandidate(c, checkCategory, checkTags, keyword, criteria.Location); s > 0 {
			matched = append(matched, c)
			scores = append(scores, s)
		}
	}
	sortByScore(matched, scores)

	if len(matched) == 0 && checkCategory != "" {
		return categoryFallback(candidates, checkCategory)
	}
	return matched
}

func scoreCandidate(c domain.Candidate, checkCategory domain.ServiceCategory, checkTags []string, keyword, location string) float64 {
	score := 0.0

	if checkCategory != "" && c.Category == checkCategory {
		score += categoryBonus
	}

	candidateTags := pkg.LowerAll(c.Tags)
	for _, tag := range checkTags {
		if pkg.Contains(candidateTags, tag) {
			score += exactTagBonus
			continue
		}
		for _, ct := range candidateTags {
			if strings.Contains(ct, tag) || strings.Contains(tag, ct) {
				score += partialTagBonus
				break
			}
		}
	}

	if keyword != "" {
		nameMatch := strings.Contains(strings.ToLower(c.Name), keyword)
		descMatch := strings.Contains(strings.ToLower(c.Description), keyword)
		if nameMatch {
			score += nameBonus
		}
		if descMatch {
			score += descBonus
		}
		// a specific term that hit nothing, with no category to anchor the
		// search, excludes the candidate before quality bonuses apply
		if !nameMatch && !descMatch && score == 0 && checkCategory == "" {
			return sentinelScore
		}
	}

	if location != "" {
		if strings.Contains(strings.ToLower(c.Location), strings.ToLower(location)) {
			score += locationBonus
		} else if location != domain.DefaultCityRU && location != domain.DefaultCityUZ {
			score -= locationPenalty
		}
	}

	score += c.Rating * 2
	reviewBonus := c.ReviewsCount / 5
	if reviewBonus > maxReviewBonus {
		reviewBonus = maxReviewBonus
	}
	score += float64(reviewBonus)
	if c.Verified {
		score += verifiedBonus
	}

	return score
}

func sortByScore(candidates []domain.Candidate, scores []float64) {
	type pair struct {
		c domain.Candidate
		s float64
	}
	pairs := make([]pair, len(candidates))
	for i := range candidates {
		pairs[i] = pair{candidates[i], scores[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].s > pairs[j].s
	})
	for i := range pairs {
		candidates[i] = pairs[i].c
	}
}

func categoryFallback(candidates []domain.Candidate, category domain.ServiceCategory) []domain.Candidate {
	out := make([]domain.Candidate, 0)
	for _, c := range candidates {
		if c.Category == category {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}
