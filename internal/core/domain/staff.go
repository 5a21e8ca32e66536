package domain

import "time"

// StaffMember mirrors the persisted representation in the staff_members table.
type StaffMember struct {
	ID          int64
	FullName    string
	Email       string
	Mobile      string
	Designation string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
