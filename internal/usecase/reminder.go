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
)

// ErrReminderTitleRequired indicates a reminder was submitted without a title.
var ErrReminderTitleRequired = errors.New("reminder: title is required")

// ReminderService manages patient reminders and surfaces the ones due.
type ReminderService struct {
	reminders port.ReminderRepository
	publisher port.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewReminderService wires the reminder service.
func NewReminderService(reminders port.ReminderRepository, publisher port.EventPublisher, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		reminders: reminders,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ReminderInput carries the reminder form fields.
type ReminderInput struct {
	PatientID int64
	Title     string
	Note      *string
	DueAt     time.Time
}

// Schedule creates a reminder and publishes the scheduled event.
func (s *ReminderService) Schedule(ctx context.Context, in ReminderInput) (*domain.Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrReminderTitleRequired
	}

	reminder := domain.Reminder{
		PatientID: in.PatientID,
		Title:     title,
		Note:      in.Note,
		DueAt:     in.DueAt,
	}

	id, err := s.reminders.Create(ctx, reminder)
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	reminder.ID = id

	if err := s.publisher.PublishReminderScheduled(ctx, domain.ReminderScheduledEvent{
		ReminderID:  id,
		PatientID:   in.PatientID,
		Title:       title,
		DueAt:       in.DueAt,
		ScheduledAt: s.now().UTC(),
	}); err != nil {
		s.logger.Warn("reminder scheduled event not published", zap.Int64("reminder_id", id), zap.Error(err))
	}

	return &reminder, nil
}

// Update rewrites a reminder.
func (s *ReminderService) Update(ctx context.Context, reminderID int64, in ReminderInput) (*domain.Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrReminderTitleRequired
	}

	reminder, err := s.reminders.GetByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}

	reminder.Title = title
	reminder.Note = in.Note
	reminder.DueAt = in.DueAt

	if err := s.reminders.Update(ctx, *reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

// MarkDone flags the reminder as handled so it stops surfacing.
func (s *ReminderService) MarkDone(ctx context.Context, reminderID int64) (*domain.Reminder, error) {
	reminder, err := s.reminders.GetByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}

	reminder.Done = true
	if err := s.reminders.Update(ctx, *reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

// Delete removes a reminder.
func (s *ReminderService) Delete(ctx context.Context, reminderID int64) error {
	return s.reminders.Delete(ctx, reminderID)
}

// List returns every reminder, soonest due first.
func (s *ReminderService) List(ctx context.Context) ([]domain.Reminder, error) {
	return s.reminders.List(ctx)
}

// Due returns undone reminders whose due date has arrived.
func (s *ReminderService) Due(ctx context.Context) ([]domain.Reminder, error) {
	return s.reminders.ListDueBefore(ctx, s.now())
}
