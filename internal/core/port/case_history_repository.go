package port

import (
	"context"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// CaseHistoryLinks carries the catalog ids linked to a case on write.
type CaseHistoryLinks struct {
	ConditionIDs []int64
	TreatmentIDs []int64
	MedicineIDs  []int64
}

// CaseHistoryRepository deals with case history storage including the linked
// conditions, treatments and medicines.
type CaseHistoryRepository interface {
	Create(ctx context.Context, caseHistory domain.CaseHistory, links CaseHistoryLinks) (int64, error)
	Update(ctx context.Context, caseHistory domain.CaseHistory, links CaseHistoryLinks) error
	Delete(ctx context.Context, caseID int64) error
	GetByID(ctx context.Context, caseID int64) (*domain.CaseHistory, error)
	ListByPatient(ctx context.Context, patientID int64) ([]domain.CaseHistory, error)
}
