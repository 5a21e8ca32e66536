package domain

import "time"

// AppointmentStatus enumerates the lifecycle of a booking.
type AppointmentStatus string

const (
	AppointmentBooked    AppointmentStatus = "booked"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment mirrors the persisted representation in the appointments table.
type Appointment struct {
	ID        int64
	PatientID int64
	StaffID   int64
	StartsAt  time.Time
	EndsAt    time.Time
	Status    AppointmentStatus
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether two appointments for the same staff member collide.
func (a Appointment) Overlaps(other Appointment) bool {
	if a.StaffID != other.StaffID {
		return false
	}
	return a.StartsAt.Before(other.EndsAt) && other.StartsAt.Before(a.EndsAt)
}
