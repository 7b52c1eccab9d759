package domain

// ServiceCategory marketplace service category. Values are the Russian
// labels the clients render directly.
type ServiceCategory string

const (
	// CategoryRepair Ремонт
	CategoryRepair ServiceCategory = "Ремонт"
	// CategoryTutors Репетиторы
	CategoryTutors ServiceCategory = "Репетиторы"
	// CategoryCleaning Уборка
	CategoryCleaning ServiceCategory = "Уборка"
	// CategoryIT IT и фриланс
	CategoryIT ServiceCategory = "IT и фриланс"
	// CategoryBeauty Красота
	CategoryBeauty ServiceCategory = "Красота"
	// CategoryTransport Перевозки
	CategoryTransport ServiceCategory = "Перевозки"
	// CategoryFinance Бухгалтеры и юристы
	CategoryFinance ServiceCategory = "Бухгалтеры и юристы"
	// CategorySport Спорт
	CategorySport ServiceCategory = "Спорт"
	// CategoryDomestic Домашний персонал
	CategoryDomestic ServiceCategory = "Домашний персонал"
	// CategoryEvents Артисты
	CategoryEvents ServiceCategory = "Артисты"
	// CategoryOther Другое
	CategoryOther ServiceCategory = "Другое"
)

// DefaultCity searches scoped to the default city don't penalize candidates
// elsewhere; these are its two spellings.
const (
	DefaultCityRU = "Ташкент"
	DefaultCityUZ = "Toshkent"
)

// Candidate the scoring view of a specialist or task. Matching reads these
// fields and never mutates them.
type Candidate struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     ServiceCategory `json:"category"`
	Tags         []string        `json:"tags"`
	Location     string          `json:"location"`
	Rating       float64         `json:"rating"`
	ReviewsCount int             `json:"reviews_count"`
	Verified     bool            `json:"verified"`
}

// AIAnalysis structured enrichment of a free-text request. Optional on every
// path; matching degrades to the plain fields when it is absent.
type AIAnalysis struct {
	Category             ServiceCategory `json:"category"`
	SuggestedTitle       string          `json:"suggested_title"`
	SuggestedDescription string          `json:"suggested_description"`
	EstimatedPriceRange  string          `json:"estimated_price_range"`
	RelevantTags         []string        `json:"relevant_tags"`
	Location             string          `json:"location,omitempty"`
}

// Criteria one search request's query descriptor
type Criteria struct {
	Category   ServiceCategory `json:"category,omitempty"`
	Tags       []string        `json:"tags,omitempty"`
	Location   string          `json:"location,omitempty"`
	Keyword    string          `json:"keyword,omitempty"`
	AIAnalysis *AIAnalysis     `json:"ai_analysis,omitempty"`
}

// EffectiveCategory AI-derived category wins over the plain field
func (c Criteria) EffectiveCategory() ServiceCategory {
	if c.AIAnalysis != nil && c.AIAnalysis.Category != "" {
		return c.AIAnalysis.Category
	}
	return c.Category
}
