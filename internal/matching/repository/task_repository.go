package repository

import (
	"maestro_marketplace/internal/matching/domain"

	"gorm.io/gorm"
)

// TaskRepo task and response store
type TaskRepo interface {
	AutoMigrate() error
	Create(task *domain.Task) error
	GetByID(id string) (*domain.Task, error)
	Update(task *domain.Task) error
	FindOpen() ([]domain.Task, error)
	FindByClient(clientID string) ([]domain.Task, error)
	FindResponses(taskID string) ([]domain.TaskResponse, error)
	// CreateResponse store the bid, bump the task's response counter, and
	// debit the response fee in one transaction
	CreateResponse(response *domain.TaskResponse, debit func(tx *gorm.DB) error) error
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo create TaskRepo
func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Task{}, &domain.TaskResponse{})
}

func (r *taskRepo) Create(task *domain.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepo) GetByID(id string) (*domain.Task, error) {
	var t domain.Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) Update(task *domain.Task) error {
	return r.db.Save(task).Error
}

func (r *taskRepo) FindOpen() ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.Where("status = ?", domain.TaskOpen).Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) FindByClient(clientID string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.Where("client_id = ?", clientID).Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) FindResponses(taskID string) ([]domain.TaskResponse, error) {
	var responses []domain.TaskResponse
	if err := r.db.Where("task_id = ?", taskID).Order("created_at").Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

// CreateResponse the debit callback runs inside the same transaction, so a
// failed charge rolls back both the bid and the counter bump.
func (r *taskRepo) CreateResponse(response *domain.TaskResponse, debit func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if debit != nil {
			if err := debit(tx); err != nil {
				return err
			}
		}
		if err := tx.Create(response).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Task{}).
			Where("id = ?", response.TaskID).
			Update("responses_count", gorm.Expr("responses_count + 1")).Error
	})
}
