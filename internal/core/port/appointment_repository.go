package port

import (
	"context"
	"time"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// AppointmentRepository deals with booking storage.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment domain.Appointment) (int64, error)
	Update(ctx context.Context, appointment domain.Appointment) error
	Delete(ctx context.Context, appointmentID int64) error
	GetByID(ctx context.Context, appointmentID int64) (*domain.Appointment, error)
	ListByStaffBetween(ctx context.Context, staffID int64, from, to time.Time) ([]domain.Appointment, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
}
