package app

import (
	"context"
	"time"

	"maestro_marketplace/internal/matching/domain"
	"maestro_marketplace/internal/matching/repository"
	errprocess "maestro_marketplace/pkg/err"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskUseCase task lifecycle: posting, responding, assignment
type TaskUseCase struct {
	taskRepo       repository.TaskRepo
	specialistRepo repository.SpecialistRepo
	analyzer       *Analyzer
	events         repository.EventPublisher
}

// NewTaskUseCase init task use case
func NewTaskUseCase(
	taskRepo repository.TaskRepo,
	specialistRepo repository.SpecialistRepo,
	analyzer *Analyzer,
	events repository.EventPublisher,
) *TaskUseCase {
	return &TaskUseCase{
		taskRepo:       taskRepo,
		specialistRepo: specialistRepo,
		analyzer:       analyzer,
		events:         events,
	}
}

// CreateTask post a task. A task with no category gets one from analysis of
// its text, so free-form posts still land somewhere searchable.
func (uc *TaskUseCase) CreateTask(ctx context.Context, task *domain.Task) error {
	if task.ClientID == "" {
		return errprocess.Set("task rejected: no client")
	}
	if task.Title == "" && task.Description == "" {
		return errprocess.Set("task rejected: empty")
	}

	if task.Category == "" {
		analysis := uc.analyzer.Analyze(task.Title + " " + task.Description)
		task.Category = analysis.Category
		if task.Title == "" {
			task.Title = analysis.SuggestedTitle
		}
		if len(task.Tags) == 0 {
			task.Tags = analysis.RelevantTags
		}
	}

	task.ID = uuid.NewString()
	task.Status = domain.TaskOpen
	task.ResponsesCount = 0
	task.CreatedAt = time.Now().UTC()

	if err := uc.taskRepo.Create(task); err != nil {
		return err
	}
	if uc.events != nil {
		uc.events.Publish(ctx, "task_created", map[string]interface{}{
			"task_id":  task.ID,
			"category": task.Category,
		})
	}
	return nil
}

// RespondToTask file a specialist's bid. The response fee, the bid row, and
// the task's response counter move in one transaction: a balance that can't
// cover the fee leaves all three untouched.
func (uc *TaskUseCase) RespondToTask(ctx context.Context, taskID, specialistID, message string, price int64) (*domain.TaskResponse, error) {
	task, err := uc.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.TaskOpen {
		return nil, errprocess.Set("response rejected: task not open")
	}
	// reject before the transaction: a missing specialist would otherwise
	// surface as a misleading insufficient-funds failure from the debit
	if _, err := uc.specialistRepo.GetByID(specialistID); err != nil {
		return nil, errprocess.Set("response rejected: unknown specialist")
	}

	response := &domain.TaskResponse{
		ID:           uuid.NewString(),
		TaskID:       taskID,
		SpecialistID: specialistID,
		Message:      message,
		Price:        price,
		CreatedAt:    time.Now().UTC(),
	}
	err = uc.taskRepo.CreateResponse(response, func(tx *gorm.DB) error {
		return repository.DebitBalanceTx(tx, specialistID, domain.ResponseFee)
	})
	if err != nil {
		return nil, err
	}

	if uc.events != nil {
		uc.events.Publish(ctx, "task_response", map[string]interface{}{
			"task_id":       taskID,
			"specialist_id": specialistID,
			"fee":           domain.ResponseFee,
		})
	}
	return response, nil
}

// AssignSpecialist accept one of the bids
func (uc *TaskUseCase) AssignSpecialist(ctx context.Context, taskID, specialistID string) error {
	task, err := uc.taskRepo.GetByID(taskID)
	if err != nil {
		return err
	}
	if task.Status != domain.TaskOpen {
		return errprocess.Set("assignment rejected: task not open")
	}

	task.Status = domain.TaskInProgress
	task.AssignedSpecialist = specialistID
	if err := uc.taskRepo.Update(task); err != nil {
		return err
	}

	if uc.events != nil {
		uc.events.Publish(ctx, "task_assigned", map[string]interface{}{
			"task_id":       taskID,
			"specialist_id": specialistID,
		})
	}
	return nil
}

// ListOpenTasks open tasks, newest first
func (uc *TaskUseCase) ListOpenTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.taskRepo.FindOpen()
}

// ListResponses all bids on a task, oldest first
func (uc *TaskUseCase) ListResponses(ctx context.Context, taskID string) ([]domain.TaskResponse, error) {
	return uc.taskRepo.FindResponses(taskID)
}
