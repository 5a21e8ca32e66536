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

// AppointmentRepository implements port.AppointmentRepository using PostgreSQL.
type AppointmentRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewAppointmentRepository wires a PostgreSQL-backed appointment repository.
func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var appointmentColumns = []string{
	"id",
	"patient_id",
	"staff_id",
	"starts_at",
	"ends_at",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Create inserts a new appointment and returns its id.
func (r *AppointmentRepository) Create(ctx context.Context, appointment domain.Appointment) (int64, error) {
	stmt, args, err := r.builder.
		Insert("onehealth.appointments").
		Columns("patient_id", "staff_id", "starts_at", "ends_at", "status", "notes").
		Values(
			appointment.PatientID,
			appointment.StaffID,
			appointment.StartsAt,
			appointment.EndsAt,
			appointment.Status,
			appointment.Notes,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert appointment sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert appointment: %w", err)
	}

	return id, nil
}

// Update rewrites the appointment.
func (r *AppointmentRepository) Update(ctx context.Context, appointment domain.Appointment) error {
	stmt, args, err := r.builder.
		Update("onehealth.appointments").
		Set("patient_id", appointment.PatientID).
		Set("staff_id", appointment.StaffID).
		Set("starts_at", appointment.StartsAt).
		Set("ends_at", appointment.EndsAt).
		Set("status", appointment.Status).
		Set("notes", appointment.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": appointment.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update appointment sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an appointment.
func (r *AppointmentRepository) Delete(ctx context.Context, appointmentID int64) error {
	stmt, args, err := r.builder.
		Delete("onehealth.appointments").
		Where(squirrel.Eq{"id": appointmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete appointment sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetByID retrieves an appointment by identifier.
func (r *AppointmentRepository) GetByID(ctx context.Context, appointmentID int64) (*domain.Appointment, error) {
	stmt, args, err := r.builder.
		Select(appointmentColumns...).
		From("onehealth.appointments").
		Where(squirrel.Eq{"id": appointmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select appointment sql: %w", err)
	}

	appointment, err := scanAppointmentRow(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return appointment, nil
}

// ListByStaffBetween returns a staff member's appointments overlapping the
// window, used for double-booking checks.
func (r *AppointmentRepository) ListByStaffBetween(ctx context.Context, staffID int64, from, to time.Time) ([]domain.Appointment, error) {
	stmt, args, err := r.builder.
		Select(appointmentColumns...).
		From("onehealth.appointments").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("starts_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build staff appointments sql: %w", err)
	}

	return r.queryAppointments(ctx, stmt, args)
}

// ListBetween returns every appointment overlapping the window.
func (r *AppointmentRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	stmt, args, err := r.builder.
		Select(appointmentColumns...).
		From("onehealth.appointments").
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("starts_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list appointments sql: %w", err)
	}

	return r.queryAppointments(ctx, stmt, args)
}

func (r *AppointmentRepository) queryAppointments(ctx context.Context, stmt string, args []any) ([]domain.Appointment, error) {
	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		appointment, err := scanAppointmentRow(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appointments, nil
}

func scanAppointmentRow(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	if err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.StaffID,
		&appointment.StartsAt,
		&appointment.EndsAt,
		&appointment.Status,
		&appointment.Notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan appointment: %w", err)
	}
	return &appointment, nil
}

var _ port.AppointmentRepository = (*AppointmentRepository)(nil)
