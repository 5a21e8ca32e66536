package domain

import "time"

// Patient mirrors the persisted representation in the patients table. The SPA
// labels these "customers"; fields follow its registration form.
type Patient struct {
	ID              int64
	FullName        string
	Email           string
	Mobile          string
	AltMobile       *string
	Address         *string
	DOB             *time.Time
	InsurancePolicy *string
	PasswordHash    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
