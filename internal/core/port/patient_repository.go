package port

import (
	"context"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// PatientFilter narrows patient listings.
type PatientFilter struct {
	Search string
	Limit  int
	Offset int
}

// PatientRepository deals with patient storage.
type PatientRepository interface {
	Create(ctx context.Context, patient domain.Patient) (int64, error)
	Update(ctx context.Context, patient domain.Patient) error
	Delete(ctx context.Context, patientID int64) error
	GetByID(ctx context.Context, patientID int64) (*domain.Patient, error)
	GetByEmail(ctx context.Context, email string) (*domain.Patient, error)
	List(ctx context.Context, filter PatientFilter) ([]domain.Patient, error)
	Count(ctx context.Context, filter PatientFilter) (int, error)
}
