package app

import (
	"strings"
	"testing"
	"time"

	"maestro_marketplace/internal/matching/domain"

	"github.com/stretchr/testify/assert"
)

func TestCategoryByKeywords(t *testing.T) {
	cases := map[string]domain.ServiceCategory{
		"Потек кран на кухне":          domain.CategoryRepair,
		"нужна уборка квартиры":        domain.CategoryCleaning,
		"Репетитор по математике":      domain.CategoryTutors,
		"сделать сайт для магазина":    domain.CategoryIT,
		"маникюр на дом":               domain.CategoryBeauty,
		"доставка посылки":             domain.CategoryTransport,
		"нужен юрист по договору":      domain.CategoryFinance,
		"персональный тренер":          domain.CategorySport,
		"няня для ребенка":             domain.CategoryDomestic,
		"фотограф на свадьбу":          domain.CategoryEvents,
		"что-то совсем непонятное тут": domain.CategoryRepair,
	}

	for query, want := range cases {
		assert.Equal(t, want, CategoryByKeywords(query), "query: %s", query)
	}
}

func TestCategoryByKeywords_FirstRuleWins(t *testing.T) {
	// both "перевозка" and "мебель" fragments appear; repair rules are
	// checked first
	assert.Equal(t, domain.CategoryRepair, CategoryByKeywords("сборка мебели и перевозка"))
}

func TestKeywordAnalysis(t *testing.T) {
	analysis := KeywordAnalysis("Потек кран")

	assert.Equal(t, domain.CategoryRepair, analysis.Category)
	assert.Equal(t, "Потек кран", analysis.SuggestedTitle)
	assert.Equal(t, "По договоренности", analysis.EstimatedPriceRange)
	assert.Equal(t, []string{string(domain.CategoryRepair), "Срочно"}, analysis.RelevantTags)
	assert.Equal(t, domain.DefaultCityRU, analysis.Location)
}

func TestKeywordAnalysis_LongQueryGetsGenericTitle(t *testing.T) {
	long := strings.Repeat("ремонт ", 20)
	analysis := KeywordAnalysis(long)

	assert.Equal(t, "Новый заказ", analysis.SuggestedTitle)
	assert.Equal(t, long, analysis.SuggestedDescription)
}

func TestAnalyzer_NoRemoteFallsBackSilently(t *testing.T) {
	analyzer := NewAnalyzer("", time.Second)

	analysis := analyzer.Analyze("уборка офиса")

	assert.Equal(t, domain.CategoryCleaning, analysis.Category)
}
