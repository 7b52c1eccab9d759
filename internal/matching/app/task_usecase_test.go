package app

import (
	"context"
	"testing"
	"time"

	"maestro_marketplace/internal/matching/domain"
	"maestro_marketplace/internal/matching/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestTaskUseCase_CreateTask(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepo)
	mockEvents := new(MockEventPublisher)

	mockTasks.On("Create", mock.Anything).Return(nil)
	mockEvents.On("Publish", ctx, "task_created", mock.Anything).Return()

	uc := NewTaskUseCase(mockTasks, nil, NewAnalyzer("", time.Second), mockEvents)
	task := &domain.Task{
		ClientID:    "client-1",
		Title:       "Починить кран",
		Description: "Течет кран на кухне",
		Category:    domain.CategoryRepair,
	}
	err := uc.CreateTask(ctx, task)

	assert.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.TaskOpen, task.Status)
	assert.Zero(t, task.ResponsesCount)

	mockTasks.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestTaskUseCase_CreateTaskDerivesCategory(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepo)

	mockTasks.On("Create", mock.Anything).Return(nil)

	uc := NewTaskUseCase(mockTasks, nil, NewAnalyzer("", time.Second), nil)
	task := &domain.Task{ClientID: "client-1", Description: "нужна уборка после ремонта"}
	err := uc.CreateTask(ctx, task)

	assert.NoError(t, err)
	// "ремонт" fires before "убор" in the keyword rules
	assert.Equal(t, domain.CategoryRepair, task.Category)
	assert.NotEmpty(t, task.Title)
	assert.NotEmpty(t, task.Tags)
}

func TestTaskUseCase_CreateTaskRejectsEmpty(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepo)

	uc := NewTaskUseCase(mockTasks, nil, NewAnalyzer("", time.Second), nil)

	assert.Error(t, uc.CreateTask(ctx, &domain.Task{Title: "без клиента"}))
	assert.Error(t, uc.CreateTask(ctx, &domain.Task{ClientID: "client-1"}))
	mockTasks.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTaskUseCase_RespondToTask(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepo)
	mockSpecialists := new(MockSpecialistRepo)
	mockEvents := new(MockEventPublisher)

	mockTasks.On("GetByID", "t1").Return(&domain.Task{ID: "t1", Status: domain.TaskOpen}, nil)
	mockSpecialists.On("GetByID", "s1").Return(&domain.Specialist{ID: "s1"}, nil)
	mockTasks.On("CreateResponse", mock.Anything, mock.Anything).Return(nil)
	mockEvents.On("Publish", ctx, "task_response", mock.Anything).Return()

	uc := NewTaskUseCase(mockTasks, mockSpecialists, NewAnalyzer("", time.Second), mockEvents)
	response, err := uc.RespondToTask(ctx, "t1", "s1", "Сделаю завтра", 150000)

	assert.NoError(t, err)
	assert.NotEmpty(t, response.ID)
	assert.Equal(t, "t1", response.TaskID)
	assert.Equal(t, int64(150000), response.Price)

	mockTasks.AssertExpectations(t)
	mockSpecialists.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestTaskUseCase_RespondUnknownSpecialist(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepo)
	mockSpecialists := new(MockSpecialistRepo)

	mockTasks.On("GetByID", "t1").Return(&domain.Task{ID: "t1", Status: domain.TaskOpen}, nil)
	mockSpecialists.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	uc := NewTaskUseCase(mockTasks, mockSpecialists, NewAnalyzer("", time.Second), nil)
	_, err := uc.RespondToTask(ctx, "t1", "ghost", "кто я", 1000)

	assert.Error(t, err)
	mockTasks.AssertNotCalled(t, "CreateResponse", mock.Anything, mock.Anything)
}

func TestTaskUseCase_RespondToClosedTask(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepo)

	mockTasks.On("GetByID", "t1").Return(&domain.Task{ID: "t1", Status: domain.TaskCompleted}, nil)

	uc := NewTaskUseCase(mockTasks, nil, NewAnalyzer("", time.Second), nil)
	_, err := uc.RespondToTask(ctx, "t1", "s1", "поздно", 1000)

	assert.Error(t, err)
	mockTasks.AssertNotCalled(t, "CreateResponse", mock.Anything, mock.Anything)
}

func TestTaskUseCase_RespondInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepo)
	mockSpecialists := new(MockSpecialistRepo)
	mockEvents := new(MockEventPublisher)

	mockTasks.On("GetByID", "t1").Return(&domain.Task{ID: "t1", Status: domain.TaskOpen}, nil)
	mockSpecialists.On("GetByID", "s1").Return(&domain.Specialist{ID: "s1"}, nil)
	mockTasks.On("CreateResponse", mock.Anything, mock.Anything).Return(repository.ErrInsufficientFunds)

	uc := NewTaskUseCase(mockTasks, mockSpecialists, NewAnalyzer("", time.Second), mockEvents)
	_, err := uc.RespondToTask(ctx, "t1", "s1", "без баланса", 1000)

	assert.ErrorIs(t, err, repository.ErrInsufficientFunds)
	// a failed charge publishes nothing
	mockEvents.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskUseCase_AssignSpecialist(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepo)

	task := &domain.Task{ID: "t1", Status: domain.TaskOpen}
	mockTasks.On("GetByID", "t1").Return(task, nil)
	mockTasks.On("Update", mock.MatchedBy(func(t *domain.Task) bool {
		return t.Status == domain.TaskInProgress && t.AssignedSpecialist == "s1"
	})).Return(nil)

	uc := NewTaskUseCase(mockTasks, nil, NewAnalyzer("", time.Second), nil)
	err := uc.AssignSpecialist(ctx, "t1", "s1")

	assert.NoError(t, err)
	mockTasks.AssertExpectations(t)
}
