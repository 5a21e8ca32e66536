package domain

import "time"

// Expense is one entry of the clinic's expense tracker.
type Expense struct {
	ID        int64
	Category  string
	Amount    float64
	Note      *string
	SpentAt   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
