package domain

import "time"

// UserStatus enumerates possible account states.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusLocked   UserStatus = "locked"
	UserStatusDisabled UserStatus = "disabled"
)

// User mirrors the persisted representation in the users table. These are the
// clinic operators signing into the admin dashboard, not patients.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Status       UserStatus
	Role         string
	TwoFASecret  *string
	TwoFAEnabled bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// Role names recognised by the admin API.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)
