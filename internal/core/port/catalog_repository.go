package port

import (
	"context"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// MedicineRepository deals with medicine master data.
type MedicineRepository interface {
	Create(ctx context.Context, medicine domain.Medicine) (int64, error)
	Update(ctx context.Context, medicine domain.Medicine) error
	Delete(ctx context.Context, medicineID int64) error
	GetByID(ctx context.Context, medicineID int64) (*domain.Medicine, error)
	List(ctx context.Context) ([]domain.Medicine, error)
}

// TreatmentRepository deals with treatment master data.
type TreatmentRepository interface {
	Create(ctx context.Context, treatment domain.Treatment) (int64, error)
	Update(ctx context.Context, treatment domain.Treatment) error
	Delete(ctx context.Context, treatmentID int64) error
	GetByID(ctx context.Context, treatmentID int64) (*domain.Treatment, error)
	List(ctx context.Context) ([]domain.Treatment, error)
}

// MedicalConditionRepository deals with medical condition master data.
type MedicalConditionRepository interface {
	Create(ctx context.Context, condition domain.MedicalCondition) (int64, error)
	Update(ctx context.Context, condition domain.MedicalCondition) error
	Delete(ctx context.Context, conditionID int64) error
	GetByID(ctx context.Context, conditionID int64) (*domain.MedicalCondition, error)
	List(ctx context.Context) ([]domain.MedicalCondition, error)
}
