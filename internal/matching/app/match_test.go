package app

import (
	"testing"

	"maestro_marketplace/internal/matching/domain"

	"github.com/stretchr/testify/assert"
)

func repairPool() []domain.Candidate {
	return []domain.Candidate{
		{
			ID: "s1", Name: "Мастер Алишер", Description: "Ремонт сантехники, замена труб",
			Category: domain.CategoryRepair, Tags: []string{"Сантехника", "Трубы"},
			Location: "Ташкент", Rating: 4.9, ReviewsCount: 120, Verified: true,
		},
		{
			ID: "s2", Name: "Бригада Фарход", Description: "Косметический ремонт квартир",
			Category: domain.CategoryRepair, Tags: []string{"Отделка"},
			Location: "Ташкент", Rating: 4.2, ReviewsCount: 15,
		},
		{
			ID: "s3", Name: "Ольга", Description: "Репетитор английского языка",
			Category: domain.CategoryTutors, Tags: []string{"Английский"},
			Location: "Самарканд", Rating: 5.0, ReviewsCount: 40, Verified: true,
		},
	}
}

func candidateIDs(cs []domain.Candidate) []string {
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestMatchCandidates_CategoryScoring(t *testing.T) {
	result := MatchCandidates(repairPool(), domain.Criteria{Category: domain.CategoryRepair})

	// verified, higher-rated s1 outranks s2; s3 still clears zero on quality
	// bonuses alone but sits below the category matches
	assert.Equal(t, []string{"s1", "s2", "s3"}, candidateIDs(result))
}

func TestMatchCandidates_KeywordBonuses(t *testing.T) {
	result := MatchCandidates(repairPool(), domain.Criteria{Keyword: "сантехники"})

	assert.NotEmpty(t, result)
	assert.Equal(t, "s1", result[0].ID)
}

func TestMatchCandidates_SentinelExcludesUnrelated(t *testing.T) {
	// a specific keyword with no category: candidates it misses are excluded
	// outright, quality bonuses cannot resurrect them
	result := MatchCandidates(repairPool(), domain.Criteria{Keyword: "english"})

	assert.Empty(t, result)
}

func TestMatchCandidates_ExactAndPartialTags(t *testing.T) {
	pool := []domain.Candidate{
		{ID: "exact", Category: domain.CategoryRepair, Tags: []string{"сантехника"}},
		{ID: "partial", Category: domain.CategoryRepair, Tags: []string{"сантехника и отопление"}},
		{ID: "none", Category: domain.CategoryRepair, Tags: []string{"электрика"}},
	}

	result := MatchCandidates(pool, domain.Criteria{Tags: []string{"Сантехника"}})

	assert.Equal(t, []string{"exact", "partial"}, candidateIDs(result))
}

func TestMatchCandidates_AITagsAndCategoryTakePrecedence(t *testing.T) {
	criteria := domain.Criteria{
		Category: domain.CategoryTutors,
		AIAnalysis: &domain.AIAnalysis{
			Category:     domain.CategoryRepair,
			RelevantTags: []string{"Трубы"},
		},
	}

	result := MatchCandidates(repairPool(), criteria)

	assert.Equal(t, "s1", result[0].ID)
}

func TestMatchCandidates_LocationPenaltyAndDefaultCity(t *testing.T) {
	pool := []domain.Candidate{
		{ID: "here", Category: domain.CategoryRepair, Location: "Самарканд", Rating: 3},
		{ID: "elsewhere", Category: domain.CategoryRepair, Location: "Ташкент", Rating: 3},
	}

	result := MatchCandidates(pool, domain.Criteria{Category: domain.CategoryRepair, Location: "Самарканд"})
	assert.Equal(t, []string{"here", "elsewhere"}, candidateIDs(result))

	// the default city boosts local candidates but never penalizes the rest
	withDefault := MatchCandidates(pool, domain.Criteria{Category: domain.CategoryRepair, Location: domain.DefaultCityRU})
	assert.Equal(t, []string{"elsewhere", "here"}, candidateIDs(withDefault))
}

func TestMatchCandidates_Deterministic(t *testing.T) {
	criteria := domain.Criteria{Category: domain.CategoryRepair, Keyword: "ремонт", Location: "Ташкент"}

	first := MatchCandidates(repairPool(), criteria)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, MatchCandidates(repairPool(), criteria))
	}
}

func TestMatchCandidates_StableTieBreak(t *testing.T) {
	pool := []domain.Candidate{
		{ID: "a", Category: domain.CategoryRepair, Rating: 4},
		{ID: "b", Category: domain.CategoryRepair, Rating: 4},
		{ID: "c", Category: domain.CategoryRepair, Rating: 4},
	}

	result := MatchCandidates(pool, domain.Criteria{Category: domain.CategoryRepair})

	assert.Equal(t, []string{"a", "b", "c"}, candidateIDs(result))
}

func TestMatchCandidates_CategoryAnchorsNarrowKeyword(t *testing.T) {
	result := MatchCandidates(repairPool(), domain.Criteria{
		Category: domain.CategoryRepair,
		Keyword:  "zzz_no_match",
	})

	// the category anchor keeps the keyword miss from excluding anyone; the
	// category matches stay ahead of quality-only scores
	assert.Equal(t, []string{"s1", "s2", "s3"}, candidateIDs(result))
}

func TestMatchCandidates_CategoryFallbackRatingOrder(t *testing.T) {
	pool := repairPool()
	result := categoryFallback(pool, domain.CategoryRepair)

	// rating-ordered, not score-ordered: s1's verified badge and review
	// volume don't count here
	assert.Equal(t, []string{"s1", "s2"}, candidateIDs(result))

	lowRated := append(pool, domain.Candidate{
		ID: "s4", Name: "Новичок", Category: domain.CategoryRepair, Rating: 3.1,
	})
	assert.Equal(t, []string{"s1", "s2", "s4"}, candidateIDs(categoryFallback(lowRated, domain.CategoryRepair)))
}

func TestMatchCandidates_NoCategoryNoFallback(t *testing.T) {
	result := MatchCandidates(repairPool(), domain.Criteria{Keyword: "zzz_no_match"})

	assert.Empty(t, result)
}

func TestMatchCandidates_DoesNotMutateInput(t *testing.T) {
	pool := repairPool()
	MatchCandidates(pool, domain.Criteria{Category: domain.CategoryRepair})

	assert.Equal(t, repairPool(), pool)
}
