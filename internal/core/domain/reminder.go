package domain

import "time"

// Reminder is a dated note attached to a patient, surfaced on its due date.
type Reminder struct {
	ID        int64
	PatientID int64
	Title     string
	Note      *string
	DueAt     time.Time
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDue reports whether the reminder should be surfaced at the given moment.
func (r Reminder) IsDue(at time.Time) bool {
	return !r.Done && !r.DueAt.After(at)
}
