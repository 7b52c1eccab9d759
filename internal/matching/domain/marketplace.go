package domain

import "time"

// TaskStatus lifecycle of a posted task
type TaskStatus string

const (
	// TaskOpen accepting responses
	TaskOpen TaskStatus = "OPEN"
	// TaskInProgress a specialist was assigned
	TaskInProgress TaskStatus = "IN_PROGRESS"
	// TaskCompleted finished
	TaskCompleted TaskStatus = "COMPLETED"
	// TaskCanceled withdrawn by the client
	TaskCanceled TaskStatus = "CANCELED"
)

// ResponseFee flat charge, in UZS, debited from a specialist's balance for
// each task response.
const ResponseFee = 5000

// Specialist marketplace specialist profile
type Specialist struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	Name         string          `json:"name"`
	Category     ServiceCategory `gorm:"index" json:"category"`
	Rating       float64         `json:"rating"`
	ReviewsCount int             `json:"reviews_count"`
	Location     string          `json:"location"`
	PriceStart   int64           `json:"price_start"`
	AvatarURL    string          `json:"avatar_url"`
	Description  string          `json:"description"`
	Verified     bool            `json:"verified"`
	Tags         []string        `gorm:"serializer:json" json:"tags"`
	Telegram     string          `json:"telegram,omitempty"`
	Instagram    string          `json:"instagram,omitempty"`
	Balance      int64           `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Candidate scoring view of the specialist
func (s Specialist) Candidate() Candidate {
	return Candidate{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		Category:     s.Category,
		Tags:         s.Tags,
		Location:     s.Location,
		Rating:       s.Rating,
		ReviewsCount: s.ReviewsCount,
		Verified:     s.Verified,
	}
}

// Task a client's posted request
type Task struct {
	ID                 string          `gorm:"primaryKey" json:"id"`
	ClientID           string          `gorm:"index" json:"client_id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           ServiceCategory `gorm:"index" json:"category"`
	Budget             string          `json:"budget"`
	Location           string          `json:"location"`
	Date               string          `json:"date"`
	Status             TaskStatus      `gorm:"index" json:"status"`
	Tags               []string        `gorm:"serializer:json" json:"tags"`
	ResponsesCount     int             `json:"responses_count"`
	AssignedSpecialist string          `json:"assigned_specialist,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Candidate scoring view of the task: the title plays the name role
func (t Task) Candidate() Candidate {
	return Candidate{
		ID:          t.ID,
		Name:        t.Title,
		Description: t.Description,
		Category:    t.Category,
		Tags:        t.Tags,
		Location:    t.Location,
	}
}

// TaskResponse one specialist's bid on a task
type TaskResponse struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	TaskID       string    `gorm:"index" json:"task_id"`
	SpecialistID string    `gorm:"index" json:"specialist_id"`
	Message      string    `json:"message"`
	Price        int64     `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}
