package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/infra/security"
	"github.com/manish9869/onehealth-api/internal/repository"
)

var (
	// ErrPatientEmailTaken indicates another patient already uses the email.
	ErrPatientEmailTaken = errors.New("patient: email already registered")
	// ErrPatientRequiredFields indicates name, email or mobile is missing.
	ErrPatientRequiredFields = errors.New("patient: full name, email and mobile are required")
)

// PatientService manages the customer records of the clinic.
type PatientService struct {
	patients port.PatientRepository
	logger   *zap.Logger
}

// NewPatientService wires the patient service.
func NewPatientService(patients port.PatientRepository, logger *zap.Logger) *PatientService {
	return &PatientService{patients: patients, logger: logger}
}

// PatientInput carries the registration form fields.
type PatientInput struct {
	FullName        string
	Email           string
	Mobile          string
	AltMobile       *string
	Address         *string
	DOB             *time.Time
	InsurancePolicy *string
	Password        *string
}

// Register creates a patient. An optional password enables the customer
// portal login for that patient.
func (s *PatientService) Register(ctx context.Context, in PatientInput) (*domain.Patient, error) {
	patient, err := s.buildPatient(in)
	if err != nil {
		return nil, err
	}

	if existing, err := s.patients.GetByEmail(ctx, patient.Email); err == nil && existing != nil {
		return nil, ErrPatientEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check patient email: %w", err)
	}

	id, err := s.patients.Create(ctx, *patient)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	patient.ID = id

	s.logger.Info("patient registered", zap.Int64("patient_id", id))
	return patient, nil
}

// Update rewrites the patient profile.
func (s *PatientService) Update(ctx context.Context, patientID int64, in PatientInput) (*domain.Patient, error) {
	patient, err := s.buildPatient(in)
	if err != nil {
		return nil, err
	}
	patient.ID = patientID

	if existing, err := s.patients.GetByEmail(ctx, patient.Email); err == nil && existing != nil && existing.ID != patientID {
		return nil, ErrPatientEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check patient email: %w", err)
	}

	if err := s.patients.Update(ctx, *patient); err != nil {
		return nil, err
	}

	return s.patients.GetByID(ctx, patientID)
}

// Delete removes a patient record.
func (s *PatientService) Delete(ctx context.Context, patientID int64) error {
	return s.patients.Delete(ctx, patientID)
}

// Get returns a single patient.
func (s *PatientService) Get(ctx context.Context, patientID int64) (*domain.Patient, error) {
	return s.patients.GetByID(ctx, patientID)
}

// PatientPage is one page of a patient listing.
type PatientPage struct {
	Patients []domain.Patient
	Total    int
}

// List returns patients matching the filter with the unpaged total.
func (s *PatientService) List(ctx context.Context, filter port.PatientFilter) (*PatientPage, error) {
	patients, err := s.patients.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.patients.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &PatientPage{Patients: patients, Total: total}, nil
}

func (s *PatientService) buildPatient(in PatientInput) (*domain.Patient, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	mobile := strings.TrimSpace(in.Mobile)

	if fullName == "" || email == "" || mobile == "" {
		return nil, ErrPatientRequiredFields
	}

	patient := &domain.Patient{
		FullName:        fullName,
		Email:           email,
		Mobile:          mobile,
		AltMobile:       in.AltMobile,
		Address:         in.Address,
		DOB:             in.DOB,
		InsurancePolicy: in.InsurancePolicy,
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := security.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash patient password: %w", err)
		}
		patient.PasswordHash = &hash
	}

	return patient, nil
}
