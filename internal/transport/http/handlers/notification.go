package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	appLogger "github.com/manish9869/onehealth-api/internal/infra/logger"
)

// NotificationDispatcher fans out account notifications to downstream channels.
type NotificationDispatcher interface {
	SendPasswordReset(ctx context.Context, payload PasswordResetNotification) error
	SendAppointmentConfirmation(ctx context.Context, payload AppointmentNotification) error
}

// PasswordResetNotification captures data needed to deliver password reset credentials.
type PasswordResetNotification struct {
	Email    string
	DevToken string
	Expires  time.Time
}

// AppointmentNotification captures data needed to confirm a booking to the patient.
type AppointmentNotification struct {
	PatientEmail  string
	PatientMobile string
	StaffName     string
	StartsAt      time.Time
}

type noopDispatcher struct{}

func (noopDispatcher) SendPasswordReset(ctx context.Context, payload PasswordResetNotification) error {
	return nil
}

func (noopDispatcher) SendAppointmentConfirmation(ctx context.Context, payload AppointmentNotification) error {
	return nil
}

// LoggingNotificationDispatcher records notification dispatch events for
// observability without delivering them. Development environments use this
// instead of a mail gateway.
type LoggingNotificationDispatcher struct {
	logger *zap.Logger
}

// NewLoggingNotificationDispatcher constructs a notification dispatcher backed by structured logging.
func NewLoggingNotificationDispatcher(logger *zap.Logger) NotificationDispatcher {
	if logger == nil {
		return noopDispatcher{}
	}
	return &LoggingNotificationDispatcher{logger: logger}
}

// SendPasswordReset logs a password reset dispatch with the address masked.
func (d *LoggingNotificationDispatcher) SendPasswordReset(ctx context.Context, payload PasswordResetNotification) error {
	d.logger.Info("password reset notification",
		zap.String("email", appLogger.MaskEmail(payload.Email)),
		zap.Time("expires", payload.Expires),
	)
	return nil
}

// SendAppointmentConfirmation logs an appointment confirmation dispatch.
func (d *LoggingNotificationDispatcher) SendAppointmentConfirmation(ctx context.Context, payload AppointmentNotification) error {
	d.logger.Info("appointment confirmation notification",
		zap.String("patient_email", appLogger.MaskEmail(payload.PatientEmail)),
		zap.String("patient_mobile", appLogger.MaskPhone(payload.PatientMobile)),
		zap.String("staff", payload.StaffName),
		zap.Time("starts_at", payload.StartsAt),
	)
	return nil
}
