package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
)

// ErrStaffRequiredFields indicates name or email is missing.
var ErrStaffRequiredFields = errors.New("staff: full name and email are required")

// StaffService manages the clinic's staff roster.
type StaffService struct {
	staff  port.StaffRepository
	logger *zap.Logger
}

// NewStaffService wires the staff service.
func NewStaffService(staff port.StaffRepository, logger *zap.Logger) *StaffService {
	return &StaffService{staff: staff, logger: logger}
}

// StaffInput carries the staff form fields.
type StaffInput struct {
	FullName    string
	Email       string
	Mobile      string
	Designation string
}

// Create adds a staff member.
func (s *StaffService) Create(ctx context.Context, in StaffInput) (*domain.StaffMember, error) {
	member, err := buildStaffMember(in)
	if err != nil {
		return nil, err
	}

	id, err := s.staff.Create(ctx, *member)
	if err != nil {
		return nil, err
	}
	member.ID = id

	return member, nil
}

// Update rewrites a staff member profile.
func (s *StaffService) Update(ctx context.Context, staffID int64, in StaffInput) (*domain.StaffMember, error) {
	member, err := buildStaffMember(in)
	if err != nil {
		return nil, err
	}
	member.ID = staffID

	if err := s.staff.Update(ctx, *member); err != nil {
		return nil, err
	}

	return s.staff.GetByID(ctx, staffID)
}

// Delete removes a staff member.
func (s *StaffService) Delete(ctx context.Context, staffID int64) error {
	return s.staff.Delete(ctx, staffID)
}

// Get returns a single staff member.
func (s *StaffService) Get(ctx context.Context, staffID int64) (*domain.StaffMember, error) {
	return s.staff.GetByID(ctx, staffID)
}

// List returns the full roster in name order.
func (s *StaffService) List(ctx context.Context) ([]domain.StaffMember, error) {
	return s.staff.List(ctx)
}

func buildStaffMember(in StaffInput) (*domain.StaffMember, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if fullName == "" || email == "" {
		return nil, ErrStaffRequiredFields
	}

	return &domain.StaffMember{
		FullName:    fullName,
		Email:       email,
		Mobile:      strings.TrimSpace(in.Mobile),
		Designation: strings.TrimSpace(in.Designation),
	}, nil
}
