package repository

import (
	"errors"

	"maestro_marketplace/internal/matching/domain"

	"gorm.io/gorm"
)

// SpecialistRepo specialist store
type SpecialistRepo interface {
	AutoMigrate() error
	Create(specialist *domain.Specialist) error
	GetByID(id string) (*domain.Specialist, error)
	Update(specialist *domain.Specialist) error
	FindAll() ([]domain.Specialist, error)
}

// ErrInsufficientFunds the specialist's balance can't cover the charge
var ErrInsufficientFunds = errors.New("insufficient funds")

type specialistRepo struct {
	db *gorm.DB
}

// NewSpecialistRepo create SpecialistRepo
func NewSpecialistRepo(db *gorm.DB) SpecialistRepo {
	return &specialistRepo{db: db}
}

func (r *specialistRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Specialist{})
}

func (r *specialistRepo) Create(specialist *domain.Specialist) error {
	return r.db.Create(specialist).Error
}

func (r *specialistRepo) GetByID(id string) (*domain.Specialist, error) {
	var s domain.Specialist
	if err := r.db.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *specialistRepo) Update(specialist *domain.Specialist) error {
	return r.db.Save(specialist).Error
}

func (r *specialistRepo) FindAll() ([]domain.Specialist, error) {
	var specialists []domain.Specialist
	if err := r.db.Order("created_at").Find(&specialists).Error; err != nil {
		return nil, err
	}
	return specialists, nil
}

// DebitBalanceTx atomically charge a specialist as a transaction step, for
// callers composing it with other writes; fails without mutation when the
// balance can't cover the amount
func DebitBalanceTx(tx *gorm.DB, id string, amount int64) error {
	result := tx.Model(&domain.Specialist{}).
		Where("id = ? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientFunds
	}
	return nil
}
