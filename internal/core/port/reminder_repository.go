package port

import (
	"context"
	"time"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// ReminderRepository deals with reminder storage.
type ReminderRepository interface {
	Create(ctx context.Context, reminder domain.Reminder) (int64, error)
	Update(ctx context.Context, reminder domain.Reminder) error
	Delete(ctx context.Context, reminderID int64) error
	GetByID(ctx context.Context, reminderID int64) (*domain.Reminder, error)
	List(ctx context.Context) ([]domain.Reminder, error)
	ListDueBefore(ctx context.Context, at time.Time) ([]domain.Reminder, error)
}
