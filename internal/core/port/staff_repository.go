package port

import (
	"context"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// StaffRepository deals with staff member storage.
type StaffRepository interface {
	Create(ctx context.Context, staff domain.StaffMember) (int64, error)
	Update(ctx context.Context, staff domain.StaffMember) error
	Delete(ctx context.Context, staffID int64) error
	GetByID(ctx context.Context, staffID int64) (*domain.StaffMember, error)
	List(ctx context.Context) ([]domain.StaffMember, error)
}
