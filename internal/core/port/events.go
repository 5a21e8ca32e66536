package port

import (
	"context"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishInvoiceIssued(ctx context.Context, event domain.InvoiceIssuedEvent) error
	PublishAppointmentBooked(ctx context.Context, event domain.AppointmentBookedEvent) error
	PublishReminderScheduled(ctx context.Context, event domain.ReminderScheduledEvent) error
	PublishUserLoggedIn(ctx context.Context, event domain.UserLoggedInEvent) error
}
