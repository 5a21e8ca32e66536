package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
)

var (
	// ErrExpenseCategoryRequired indicates the category is missing.
	ErrExpenseCategoryRequired = errors.New("expense: category is required")
	// ErrExpenseAmountInvalid indicates a zero or negative amount.
	ErrExpenseAmountInvalid = errors.New("expense: amount must be positive")
)

// ExpenseService manages the clinic's expense tracker.
type ExpenseService struct {
	expenses port.ExpenseRepository
	logger   *zap.Logger
}

// NewExpenseService wires the expense service.
func NewExpenseService(expenses port.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{expenses: expenses, logger: logger}
}

// ExpenseInput carries the expense form fields.
type ExpenseInput struct {
	Category string
	Amount   float64
	Note     *string
	SpentAt  time.Time
}

// Record stores a new expense.
func (s *ExpenseService) Record(ctx context.Context, in ExpenseInput) (*domain.Expense, error) {
	expense, err := buildExpense(in)
	if err != nil {
		return nil, err
	}

	id, err := s.expenses.Create(ctx, *expense)
	if err != nil {
		return nil, err
	}
	expense.ID = id
	return expense, nil
}

// Update rewrites an expense entry.
func (s *ExpenseService) Update(ctx context.Context, expenseID int64, in ExpenseInput) (*domain.Expense, error) {
	expense, err := buildExpense(in)
	if err != nil {
		return nil, err
	}
	expense.ID = expenseID

	if err := s.expenses.Update(ctx, *expense); err != nil {
		return nil, err
	}

	return s.expenses.GetByID(ctx, expenseID)
}

// Delete removes an expense entry.
func (s *ExpenseService) Delete(ctx context.Context, expenseID int64) error {
	return s.expenses.Delete(ctx, expenseID)
}

// Get returns a single expense.
func (s *ExpenseService) Get(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	return s.expenses.GetByID(ctx, expenseID)
}

// ExpenseReport summarizes a window of spending.
type ExpenseReport struct {
	Expenses   []domain.Expense
	Total      float64
	ByCategory map[string]float64
}

// Report returns the expenses within the window with per-category totals.
func (s *ExpenseService) Report(ctx context.Context, from, to time.Time) (*ExpenseReport, error) {
	expenses, err := s.expenses.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &ExpenseReport{
		Expenses:   expenses,
		ByCategory: map[string]float64{},
	}
	for _, expense := range expenses {
		report.Total += expense.Amount
		report.ByCategory[expense.Category] += expense.Amount
	}
	report.Total = domain.RoundMoney(report.Total)
	for category, amount := range report.ByCategory {
		report.ByCategory[category] = domain.RoundMoney(amount)
	}

	return report, nil
}

func buildExpense(in ExpenseInput) (*domain.Expense, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, ErrExpenseCategoryRequired
	}
	if in.Amount <= 0 {
		return nil, ErrExpenseAmountInvalid
	}

	spentAt := in.SpentAt
	if spentAt.IsZero() {
		spentAt = time.Now().UTC()
	}

	return &domain.Expense{
		Category: category,
		Amount:   in.Amount,
		Note:     in.Note,
		SpentAt:  spentAt,
	}, nil
}
