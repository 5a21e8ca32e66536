package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
)

// ErrCatalogNameRequired indicates a catalog entry was submitted without a name.
var ErrCatalogNameRequired = errors.New("catalog: name is required")

// CatalogService manages the master data behind case entry: medicines,
// treatments and medical conditions.
type CatalogService struct {
	medicines  port.MedicineRepository
	treatments port.TreatmentRepository
	conditions port.MedicalConditionRepository
	logger     *zap.Logger
}

// NewCatalogService wires the catalog service.
func NewCatalogService(
	medicines port.MedicineRepository,
	treatments port.TreatmentRepository,
	conditions port.MedicalConditionRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		medicines:  medicines,
		treatments: treatments,
		conditions: conditions,
		logger:     logger,
	}
}

// CreateMedicine adds a medicine entry.
func (s *CatalogService) CreateMedicine(ctx context.Context, name string, description *string) (*domain.Medicine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCatalogNameRequired
	}

	medicine := domain.Medicine{Name: name, Description: description}
	id, err := s.medicines.Create(ctx, medicine)
	if err != nil {
		return nil, err
	}
	medicine.ID = id
	return &medicine, nil
}

// UpdateMedicine rewrites a medicine entry.
func (s *CatalogService) UpdateMedicine(ctx context.Context, id int64, name string, description *string) (*domain.Medicine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCatalogNameRequired
	}
	if err := s.medicines.Update(ctx, domain.Medicine{ID: id, Name: name, Description: description}); err != nil {
		return nil, err
	}
	return s.medicines.GetByID(ctx, id)
}

// DeleteMedicine removes a medicine entry.
func (s *CatalogService) DeleteMedicine(ctx context.Context, id int64) error {
	return s.medicines.Delete(ctx, id)
}

// GetMedicine returns a single medicine.
func (s *CatalogService) GetMedicine(ctx context.Context, id int64) (*domain.Medicine, error) {
	return s.medicines.GetByID(ctx, id)
}

// ListMedicines returns every medicine.
func (s *CatalogService) ListMedicines(ctx context.Context) ([]domain.Medicine, error) {
	return s.medicines.List(ctx)
}

// CreateTreatment adds a treatment entry. Cost is accepted as raw text; a
// non-numeric value is stored as-is and bills as zero.
func (s *CatalogService) CreateTreatment(ctx context.Context, name string, description *string, cost string) (*domain.Treatment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCatalogNameRequired
	}

	treatment := domain.Treatment{Name: name, Description: description, Cost: strings.TrimSpace(cost)}
	id, err := s.treatments.Create(ctx, treatment)
	if err != nil {
		return nil, err
	}
	treatment.ID = id
	return &treatment, nil
}

// UpdateTreatment rewrites a treatment entry.
func (s *CatalogService) UpdateTreatment(ctx context.Context, id int64, name string, description *string, cost string) (*domain.Treatment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCatalogNameRequired
	}
	if err := s.treatments.Update(ctx, domain.Treatment{ID: id, Name: name, Description: description, Cost: strings.TrimSpace(cost)}); err != nil {
		return nil, err
	}
	return s.treatments.GetByID(ctx, id)
}

// DeleteTreatment removes a treatment entry.
func (s *CatalogService) DeleteTreatment(ctx context.Context, id int64) error {
	return s.treatments.Delete(ctx, id)
}

// GetTreatment returns a single treatment.
func (s *CatalogService) GetTreatment(ctx context.Context, id int64) (*domain.Treatment, error) {
	return s.treatments.GetByID(ctx, id)
}

// ListTreatments returns every treatment.
func (s *CatalogService) ListTreatments(ctx context.Context) ([]domain.Treatment, error) {
	return s.treatments.List(ctx)
}

// CreateCondition adds a medical condition entry.
func (s *CatalogService) CreateCondition(ctx context.Context, name string, description *string) (*domain.MedicalCondition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCatalogNameRequired
	}

	condition := domain.MedicalCondition{Name: name, Description: description}
	id, err := s.conditions.Create(ctx, condition)
	if err != nil {
		return nil, err
	}
	condition.ID = id
	return &condition, nil
}

// UpdateCondition rewrites a medical condition entry.
func (s *CatalogService) UpdateCondition(ctx context.Context, id int64, name string, description *string) (*domain.MedicalCondition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCatalogNameRequired
	}
	if err := s.conditions.Update(ctx, domain.MedicalCondition{ID: id, Name: name, Description: description}); err != nil {
		return nil, err
	}
	return s.conditions.GetByID(ctx, id)
}

// DeleteCondition removes a medical condition entry.
func (s *CatalogService) DeleteCondition(ctx context.Context, id int64) error {
	return s.conditions.Delete(ctx, id)
}

// GetCondition returns a single medical condition.
func (s *CatalogService) GetCondition(ctx context.Context, id int64) (*domain.MedicalCondition, error) {
	return s.conditions.GetByID(ctx, id)
}

// ListConditions returns every medical condition.
func (s *CatalogService) ListConditions(ctx context.Context) ([]domain.MedicalCondition, error) {
	return s.conditions.List(ctx)
}
