package domain

import "time"

// InvoiceIssuedEvent is published when an invoice is persisted with its
// computed totals.
type InvoiceIssuedEvent struct {
	InvoiceID     int64
	CaseID        int64
	PatientID     int64
	GrandTotal    float64
	PendingAmount float64
	IssuedAt      time.Time
	Metadata      map[string]string
}

// AppointmentBookedEvent is published when a booking is created.
type AppointmentBookedEvent struct {
	AppointmentID int64
	PatientID     int64
	StaffID       int64
	StartsAt      time.Time
	BookedAt      time.Time
	Metadata      map[string]string
}

// ReminderScheduledEvent is published when a reminder is created.
type ReminderScheduledEvent struct {
	ReminderID  int64
	PatientID   int64
	Title       string
	DueAt       time.Time
	ScheduledAt time.Time
	Metadata    map[string]string
}

// UserLoggedInEvent is published on successful dashboard login.
type UserLoggedInEvent struct {
	UserID    string
	SessionID string
	LoggedAt  time.Time
	IPAddress *string
	Metadata  map[string]string
}
