package port

import (
	"context"
	"time"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// ExpenseRepository deals with expense tracker storage.
type ExpenseRepository interface {
	Create(ctx context.Context, expense domain.Expense) (int64, error)
	Update(ctx context.Context, expense domain.Expense) error
	Delete(ctx context.Context, expenseID int64) error
	GetByID(ctx context.Context, expenseID int64) (*domain.Expense, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Expense, error)
}
