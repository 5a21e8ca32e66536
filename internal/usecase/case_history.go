package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
)

// ErrCaseUnknownPatient indicates the case references a patient that does not exist.
var ErrCaseUnknownPatient = errors.New("case history: unknown patient")

// CaseHistoryService manages courses of care with their linked catalog entries.
type CaseHistoryService struct {
	cases    port.CaseHistoryRepository
	patients port.PatientRepository
	logger   *zap.Logger
}

// NewCaseHistoryService wires the case history service.
func NewCaseHistoryService(cases port.CaseHistoryRepository, patients port.PatientRepository, logger *zap.Logger) *CaseHistoryService {
	return &CaseHistoryService{cases: cases, patients: patients, logger: logger}
}

// CaseHistoryInput carries the case entry form fields.
type CaseHistoryInput struct {
	PatientID    int64
	StaffID      int64
	Notes        *string
	CaseDate     time.Time
	ConditionIDs []int64
	TreatmentIDs []int64
	MedicineIDs  []int64
}

// Create stores a case history after verifying the patient exists.
func (s *CaseHistoryService) Create(ctx context.Context, in CaseHistoryInput) (*domain.CaseHistory, error) {
	if _, err := s.patients.GetByID(ctx, in.PatientID); err != nil {
		return nil, ErrCaseUnknownPatient
	}

	caseDate := in.CaseDate
	if caseDate.IsZero() {
		caseDate = time.Now().UTC()
	}

	caseHistory := domain.CaseHistory{
		PatientID: in.PatientID,
		StaffID:   in.StaffID,
		Notes:     in.Notes,
		CaseDate:  caseDate,
	}

	id, err := s.cases.Create(ctx, caseHistory, port.CaseHistoryLinks{
		ConditionIDs: in.ConditionIDs,
		TreatmentIDs: in.TreatmentIDs,
		MedicineIDs:  in.MedicineIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("create case history: %w", err)
	}

	return s.cases.GetByID(ctx, id)
}

// Update rewrites a case history and its catalog links.
func (s *CaseHistoryService) Update(ctx context.Context, caseID int64, in CaseHistoryInput) (*domain.CaseHistory, error) {
	if _, err := s.patients.GetByID(ctx, in.PatientID); err != nil {
		return nil, ErrCaseUnknownPatient
	}

	caseHistory := domain.CaseHistory{
		ID:        caseID,
		PatientID: in.PatientID,
		StaffID:   in.StaffID,
		Notes:     in.Notes,
		CaseDate:  in.CaseDate,
	}

	if err := s.cases.Update(ctx, caseHistory, port.CaseHistoryLinks{
		ConditionIDs: in.ConditionIDs,
		TreatmentIDs: in.TreatmentIDs,
		MedicineIDs:  in.MedicineIDs,
	}); err != nil {
		return nil, err
	}

	return s.cases.GetByID(ctx, caseID)
}

// Delete removes a case history.
func (s *CaseHistoryService) Delete(ctx context.Context, caseID int64) error {
	return s.cases.Delete(ctx, caseID)
}

// Get returns a single case history with links hydrated.
func (s *CaseHistoryService) Get(ctx context.Context, caseID int64) (*domain.CaseHistory, error) {
	return s.cases.GetByID(ctx, caseID)
}

// ListByPatient returns the patient's case histories newest first.
func (s *CaseHistoryService) ListByPatient(ctx context.Context, patientID int64) ([]domain.CaseHistory, error) {
	return s.cases.ListByPatient(ctx, patientID)
}
