package kafka

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/infra/config"
)

func TestTopicName(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		eventType string
		want      string
	}{
		{"prefix applied", "onehealth", "billing.invoice.issued", "onehealth.billing.invoice.issued"},
		{"already prefixed", "onehealth", "onehealth.billing.invoice.issued", "onehealth.billing.invoice.issued"},
		{"no prefix configured", "", "billing.invoice.issued", "billing.invoice.issued"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Producer{cfg: config.KafkaSettings{TopicPrefix: tt.prefix}}
			if got := p.TopicName(tt.eventType); got != tt.want {
				t.Errorf("TopicName(%q) = %q, want %q", tt.eventType, got, tt.want)
			}
		})
	}
}

func TestStubPublisherAcceptsAllEvents(t *testing.T) {
	pub := NewStubPublisher(zap.NewNop())
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := pub.PublishInvoiceIssued(ctx, domain.InvoiceIssuedEvent{InvoiceID: 1, IssuedAt: at}); err != nil {
		t.Errorf("PublishInvoiceIssued: %v", err)
	}
	if err := pub.PublishAppointmentBooked(ctx, domain.AppointmentBookedEvent{AppointmentID: 1, BookedAt: at}); err != nil {
		t.Errorf("PublishAppointmentBooked: %v", err)
	}
	if err := pub.PublishReminderScheduled(ctx, domain.ReminderScheduledEvent{ReminderID: 1, ScheduledAt: at}); err != nil {
		t.Errorf("PublishReminderScheduled: %v", err)
	}
	if err := pub.PublishUserLoggedIn(ctx, domain.UserLoggedInEvent{UserID: "u1", LoggedAt: at}); err != nil {
		t.Errorf("PublishUserLoggedIn: %v", err)
	}
}
