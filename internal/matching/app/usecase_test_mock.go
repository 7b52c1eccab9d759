package app

import (
	"context"

	"maestro_marketplace/internal/matching/domain"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockSpecialistRepo Mock SpecialistRepo
type MockSpecialistRepo struct {
	mock.Mock
}

// AutoMigrate mock migration
func (m *MockSpecialistRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Create mock create specialist
func (m *MockSpecialistRepo) Create(specialist *domain.Specialist) error {
	args := m.Called(specialist)
	return args.Error(0)
}

// GetByID mock specialist lookup
func (m *MockSpecialistRepo) GetByID(id string) (*domain.Specialist, error) {
	args := m.Called(id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Specialist), args.Error(1)
	}
	return nil, args.Error(1)
}

// Update mock update specialist
func (m *MockSpecialistRepo) Update(specialist *domain.Specialist) error {
	args := m.Called(specialist)
	return args.Error(0)
}

// FindAll mock full pool
func (m *MockSpecialistRepo) FindAll() ([]domain.Specialist, error) {
	args := m.Called()
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Specialist), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTaskRepo Mock TaskRepo
type MockTaskRepo struct {
	mock.Mock
}

// AutoMigrate mock migration
func (m *MockTaskRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// Create mock create task
func (m *MockTaskRepo) Create(task *domain.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

// GetByID mock task lookup
func (m *MockTaskRepo) GetByID(id string) (*domain.Task, error) {
	args := m.Called(id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

// Update mock update task
func (m *MockTaskRepo) Update(task *domain.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

// FindOpen mock open tasks
func (m *MockTaskRepo) FindOpen() ([]domain.Task, error) {
	args := m.Called()
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByClient mock client's tasks
func (m *MockTaskRepo) FindByClient(clientID string) ([]domain.Task, error) {
	args := m.Called(clientID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindResponses mock bid list
func (m *MockTaskRepo) FindResponses(taskID string) ([]domain.TaskResponse, error) {
	args := m.Called(taskID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.TaskResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateResponse mock transactional bid creation
func (m *MockTaskRepo) CreateResponse(response *domain.TaskResponse, debit func(tx *gorm.DB) error) error {
	args := m.Called(response, debit)
	return args.Error(0)
}

// MockEventPublisher Mock EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// Publish mock event publish
func (m *MockEventPublisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	m.Called(ctx, eventType, payload)
}
