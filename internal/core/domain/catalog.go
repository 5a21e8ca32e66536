package domain

import "time"

// Medicine is a master-data entry for a prescribable medicine.
type Medicine struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Treatment is a master-data entry for a billable treatment. Cost is stored
// as text in the source system and parsed only at invoice time.
type Treatment struct {
	ID          int64
	Name        string
	Description *string
	Cost        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MedicalCondition is a master-data entry for a diagnosable condition.
type MedicalCondition struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
