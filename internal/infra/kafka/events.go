package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Key       string           `json:"key,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventType, key string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.IsValid() {
			metadata["trace_id"] = sc.TraceID().String()
		}
	}

	envelope := eventEnvelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Key:       key,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}

	select {
	case p.producer.Producer().Input() <- msg:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publish %s: %w", eventType, ctx.Err())
	}
}

// PublishInvoiceIssued emits billing.invoice.issued events.
func (p *EventPublisher) PublishInvoiceIssued(ctx context.Context, event domain.InvoiceIssuedEvent) error {
	payload := map[string]any{
		"invoice_id":     event.InvoiceID,
		"case_id":        event.CaseID,
		"patient_id":     event.PatientID,
		"grand_total":    event.GrandTotal,
		"pending_amount": event.PendingAmount,
		"issued_at":      event.IssuedAt,
		"metadata":       event.Metadata,
	}
	return p.publish(ctx, "billing.invoice.issued", strconv.FormatInt(event.InvoiceID, 10), event.IssuedAt, payload)
}

// PublishAppointmentBooked emits scheduling.appointment.booked events.
func (p *EventPublisher) PublishAppointmentBooked(ctx context.Context, event domain.AppointmentBookedEvent) error {
	payload := map[string]any{
		"appointment_id": event.AppointmentID,
		"patient_id":     event.PatientID,
		"staff_id":       event.StaffID,
		"starts_at":      event.StartsAt,
		"booked_at":      event.BookedAt,
		"metadata":       event.Metadata,
	}
	return p.publish(ctx, "scheduling.appointment.booked", strconv.FormatInt(event.AppointmentID, 10), event.BookedAt, payload)
}

// PublishReminderScheduled emits reminders.reminder.scheduled events.
func (p *EventPublisher) PublishReminderScheduled(ctx context.Context, event domain.ReminderScheduledEvent) error {
	payload := map[string]any{
		"reminder_id":  event.ReminderID,
		"patient_id":   event.PatientID,
		"title":        event.Title,
		"due_at":       event.DueAt,
		"scheduled_at": event.ScheduledAt,
		"metadata":     event.Metadata,
	}
	return p.publish(ctx, "reminders.reminder.scheduled", strconv.FormatInt(event.ReminderID, 10), event.ScheduledAt, payload)
}

// PublishUserLoggedIn emits auth.user.logged_in events.
func (p *EventPublisher) PublishUserLoggedIn(ctx context.Context, event domain.UserLoggedInEvent) error {
	payload := map[string]any{
		"user_id":    event.UserID,
		"session_id": event.SessionID,
		"logged_at":  event.LoggedAt,
		"ip_address": event.IPAddress,
		"metadata":   event.Metadata,
	}
	return p.publish(ctx, "auth.user.logged_in", event.UserID, event.LoggedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
