package app

import (
	"encoding/json"
	"strings"
	"time"

	"maestro_marketplace/internal/matching/domain"
	"maestro_marketplace/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Request analysis enriches a free-text query into structured criteria. The
// remote analyzer is best-effort: any failure degrades to keyword matching,
// never to an error — search must keep working with no AI backend at all.

// keyword rules are ordered; the first hit wins
var keywordRules = []struct {
	fragment string
	category domain.ServiceCategory
}{
	{"сантех", domain.CategoryRepair},
	{"труб", domain.CategoryRepair},
	{"кран", domain.CategoryRepair},
	{"ремонт", domain.CategoryRepair},
	{"электр", domain.CategoryRepair},
	{"сборка", domain.CategoryRepair},
	{"мебель", domain.CategoryRepair},
	{"плитк", domain.CategoryRepair},
	{"двер", domain.CategoryRepair},

	{"убор", domain.CategoryCleaning},
	{"клининг", domain.CategoryCleaning},
	{"мыть", domain.CategoryCleaning},
	{"чист", domain.CategoryCleaning},
	{"окна", domain.CategoryCleaning},

	{"репетитор", domain.CategoryTutors},
	{"математ", domain.CategoryTutors},
	{"английс", domain.CategoryTutors},
	{"язык", domain.CategoryTutors},
	{"учит", domain.CategoryTutors},
	{"школ", domain.CategoryTutors},

	{"маникюр", domain.CategoryBeauty},
	{"визаж", domain.CategoryBeauty},
	{"волос", domain.CategoryBeauty},
	{"стриж", domain.CategoryBeauty},
	{"ресниц", domain.CategoryBeauty},
	{"бров", domain.CategoryBeauty},

	{"сайт", domain.CategoryIT},
	{"дизайн", domain.CategoryIT},
	{"лого", domain.CategoryIT},
	{"smm", domain.CategoryIT},
	{"програм", domain.CategoryIT},

	{"няня", domain.CategoryDomestic},
	{"сидел", domain.CategoryDomestic},
	{"повар", domain.CategoryDomestic},
	{"водит", domain.CategoryDomestic},

	{"перевоз", domain.CategoryTransport},
	{"достав", domain.CategoryTransport},
	{"груз", domain.CategoryTransport},

	{"юрист", domain.CategoryFinance},
	{"адвокат", domain.CategoryFinance},
	{"бухгалтер", domain.CategoryFinance},

	{"тренер", domain.CategorySport},
	{"фитнес", domain.CategorySport},
	{"йога", domain.CategorySport},

	{"фото", domain.CategoryEvents},
	{"видео", domain.CategoryEvents},
	{"праздник", domain.CategoryEvents},
	{"dj", domain.CategoryEvents},
	{"аниматор", domain.CategoryEvents},
}

// CategoryByKeywords offline category detection. Defaults to repair, the
// marketplace's most common category.
func CategoryByKeywords(query string) domain.ServiceCategory {
	lower := strings.ToLower(query)
	for _, rule := range keywordRules {
		if strings.Contains(lower, rule.fragment) {
			return rule.category
		}
	}
	return domain.CategoryRepair
}

// Analyzer free-text request analysis with remote enrichment
type Analyzer struct {
	url     string
	timeout time.Duration
}

// NewAnalyzer create an Analyzer; an empty url disables the remote path
func NewAnalyzer(url string, timeout time.Duration) *Analyzer {
	return &Analyzer{url: url, timeout: timeout}
}

// Analyze enrich the query. Always returns a usable analysis.
func (a *Analyzer) Analyze(query string) domain.AIAnalysis {
	if a.url != "" {
		if analysis, ok := a.analyzeRemote(query); ok {
			return analysis
		}
	}
	return KeywordAnalysis(query)
}

func (a *Analyzer) analyzeRemote(query string) (domain.AIAnalysis, bool) {
	body, err := json.Marshal(fiber.Map{"query": query})
	if err != nil {
		return domain.AIAnalysis{}, false
	}

	agent := fiber.Post(a.url)
	agent.Timeout(a.timeout)
	agent.ContentType("application/json")
	agent.Body(body)

	code, resp, errs := agent.Bytes()
	if len(errs) > 0 || code != fiber.StatusOK {
		logger.Log.Warn("remote analyzer unavailable", zap.String("url", a.url), zap.Int("status", code))
		return domain.AIAnalysis{}, false
	}

	var analysis domain.AIAnalysis
	if err := json.Unmarshal(resp, &analysis); err != nil || analysis.Category == "" {
		logger.Log.Warn("remote analyzer returned bad payload", zap.String("url", a.url))
		return domain.AIAnalysis{}, false
	}
	return analysis, true
}

// KeywordAnalysis the offline fallback analysis
func KeywordAnalysis(query string) domain.AIAnalysis {
	category := CategoryByKeywords(query)
	title := query
	if len([]rune(query)) > 50 {
		title = "Новый заказ"
	}
	return domain.AIAnalysis{
		Category:             category,
		SuggestedTitle:       title,
		SuggestedDescription: query,
		EstimatedPriceRange:  "По договоренности",
		RelevantTags:         []string{string(category), "Срочно"},
		Location:             domain.DefaultCityRU,
	}
}
