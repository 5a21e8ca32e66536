package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/repository"
)

// ExpenseRepository implements port.ExpenseRepository using PostgreSQL.
type ExpenseRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewExpenseRepository wires a PostgreSQL-backed expense repository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var expenseColumns = []string{"id", "category", "amount", "note", "spent_at", "created_at", "updated_at"}

// Create inserts a new expense and returns its id.
func (r *ExpenseRepository) Create(ctx context.Context, expense domain.Expense) (int64, error) {
	stmt, args, err := r.builder.
		Insert("onehealth.expenses").
		Columns("category", "amount", "note", "spent_at").
		Values(expense.Category, expense.Amount, expense.Note, expense.SpentAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert expense sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	return id, nil
}

// Update rewrites an expense entry.
func (r *ExpenseRepository) Update(ctx context.Context, expense domain.Expense) error {
	stmt, args, err := r.builder.
		Update("onehealth.expenses").
		Set("category", expense.Category).
		Set("amount", expense.Amount).
		Set("note", expense.Note).
		Set("spent_at", expense.SpentAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": expense.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update expense sql: %w", err)
	}

	return execAffectingOne(ctx, r.exec, stmt, args, "update expense")
}

// Delete removes an expense entry.
func (r *ExpenseRepository) Delete(ctx context.Context, expenseID int64) error {
	stmt, args, err := r.builder.
		Delete("onehealth.expenses").
		Where(squirrel.Eq{"id": expenseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete expense sql: %w", err)
	}

	return execAffectingOne(ctx, r.exec, stmt, args, "delete expense")
}

// GetByID retrieves an expense by identifier.
func (r *ExpenseRepository) GetByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	stmt, args, err := r.builder.
		Select(expenseColumns...).
		From("onehealth.expenses").
		Where(squirrel.Eq{"id": expenseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select expense sql: %w", err)
	}

	var expense domain.Expense
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&expense.ID,
		&expense.Category,
		&expense.Amount,
		&expense.Note,
		&expense.SpentAt,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan expense: %w", err)
	}

	return &expense, nil
}

// ListBetween returns expenses spent within the window, newest first.
func (r *ExpenseRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Expense, error) {
	stmt, args, err := r.builder.
		Select(expenseColumns...).
		From("onehealth.expenses").
		Where(squirrel.GtOrEq{"spent_at": from}).
		Where(squirrel.Lt{"spent_at": to}).
		OrderBy("spent_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list expenses sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(
			&expense.ID,
			&expense.Category,
			&expense.Amount,
			&expense.Note,
			&expense.SpentAt,
			&expense.CreatedAt,
			&expense.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

var _ port.ExpenseRepository = (*ExpenseRepository)(nil)
