package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishInvoiceIssued logs billing.invoice.issued events.
func (p *StubPublisher) PublishInvoiceIssued(_ context.Context, event domain.InvoiceIssuedEvent) error {
	p.logEvent("billing.invoice.issued", event.IssuedAt, map[string]any{
		"invoice_id":     event.InvoiceID,
		"case_id":        event.CaseID,
		"patient_id":     event.PatientID,
		"grand_total":    event.GrandTotal,
		"pending_amount": event.PendingAmount,
	})
	return nil
}

// PublishAppointmentBooked logs scheduling.appointment.booked events.
func (p *StubPublisher) PublishAppointmentBooked(_ context.Context, event domain.AppointmentBookedEvent) error {
	p.logEvent("scheduling.appointment.booked", event.BookedAt, map[string]any{
		"appointment_id": event.AppointmentID,
		"patient_id":     event.PatientID,
		"staff_id":       event.StaffID,
		"starts_at":      event.StartsAt,
	})
	return nil
}

// PublishReminderScheduled logs reminders.reminder.scheduled events.
func (p *StubPublisher) PublishReminderScheduled(_ context.Context, event domain.ReminderScheduledEvent) error {
	p.logEvent("reminders.reminder.scheduled", event.ScheduledAt, map[string]any{
		"reminder_id": event.ReminderID,
		"patient_id":  event.PatientID,
		"title":       event.Title,
		"due_at":      event.DueAt,
	})
	return nil
}

// PublishUserLoggedIn logs auth.user.logged_in events.
func (p *StubPublisher) PublishUserLoggedIn(_ context.Context, event domain.UserLoggedInEvent) error {
	p.logEvent("auth.user.logged_in", event.LoggedAt, map[string]any{
		"user_id":    event.UserID,
		"session_id": event.SessionID,
	})
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
