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

// ReminderRepository implements port.ReminderRepository using PostgreSQL.
type ReminderRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewReminderRepository wires a PostgreSQL-backed reminder repository.
func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var reminderColumns = []string{"id", "patient_id", "title", "note", "due_at", "done", "created_at", "updated_at"}

// Create inserts a new reminder and returns its id.
func (r *ReminderRepository) Create(ctx context.Context, reminder domain.Reminder) (int64, error) {
	stmt, args, err := r.builder.
		Insert("onehealth.reminders").
		Columns("patient_id", "title", "note", "due_at", "done").
		Values(reminder.PatientID, reminder.Title, reminder.Note, reminder.DueAt, reminder.Done).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert reminder sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert reminder: %w", err)
	}

	return id, nil
}

// Update rewrites a reminder.
func (r *ReminderRepository) Update(ctx context.Context, reminder domain.Reminder) error {
	stmt, args, err := r.builder.
		Update("onehealth.reminders").
		Set("title", reminder.Title).
		Set("note", reminder.Note).
		Set("due_at", reminder.DueAt).
		Set("done", reminder.Done).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": reminder.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reminder sql: %w", err)
	}

	return execAffectingOne(ctx, r.exec, stmt, args, "update reminder")
}

// Delete removes a reminder.
func (r *ReminderRepository) Delete(ctx context.Context, reminderID int64) error {
	stmt, args, err := r.builder.
		Delete("onehealth.reminders").
		Where(squirrel.Eq{"id": reminderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete reminder sql: %w", err)
	}

	return execAffectingOne(ctx, r.exec, stmt, args, "delete reminder")
}

// GetByID retrieves a reminder by identifier.
func (r *ReminderRepository) GetByID(ctx context.Context, reminderID int64) (*domain.Reminder, error) {
	stmt, args, err := r.builder.
		Select(reminderColumns...).
		From("onehealth.reminders").
		Where(squirrel.Eq{"id": reminderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select reminder sql: %w", err)
	}

	reminder, err := scanReminderRow(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return reminder, nil
}

// List returns every reminder, soonest due first.
func (r *ReminderRepository) List(ctx context.Context) ([]domain.Reminder, error) {
	stmt, args, err := r.builder.
		Select(reminderColumns...).
		From("onehealth.reminders").
		OrderBy("due_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reminders sql: %w", err)
	}

	return r.queryReminders(ctx, stmt, args)
}

// ListDueBefore returns undone reminders due at or before the given moment.
func (r *ReminderRepository) ListDueBefore(ctx context.Context, at time.Time) ([]domain.Reminder, error) {
	stmt, args, err := r.builder.
		Select(reminderColumns...).
		From("onehealth.reminders").
		Where(squirrel.Eq{"done": false}).
		Where(squirrel.LtOrEq{"due_at": at}).
		OrderBy("due_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build due reminders sql: %w", err)
	}

	return r.queryReminders(ctx, stmt, args)
}

func (r *ReminderRepository) queryReminders(ctx context.Context, stmt string, args []any) ([]domain.Reminder, error) {
	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		reminder, err := scanReminderRow(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}

	return reminders, nil
}

func scanReminderRow(row pgx.Row) (*domain.Reminder, error) {
	var reminder domain.Reminder
	if err := row.Scan(
		&reminder.ID,
		&reminder.PatientID,
		&reminder.Title,
		&reminder.Note,
		&reminder.DueAt,
		&reminder.Done,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan reminder: %w", err)
	}
	return &reminder, nil
}

var _ port.ReminderRepository = (*ReminderRepository)(nil)
