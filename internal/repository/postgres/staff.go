package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/repository"
)

// StaffRepository implements port.StaffRepository using PostgreSQL.
type StaffRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewStaffRepository wires a PostgreSQL-backed staff repository.
func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var staffColumns = []string{"id", "full_name", "email", "mobile", "designation", "created_at", "updated_at"}

// Create inserts a new staff member and returns its id.
func (r *StaffRepository) Create(ctx context.Context, staff domain.StaffMember) (int64, error) {
	stmt, args, err := r.builder.
		Insert("onehealth.staff_members").
		Columns("full_name", "email", "mobile", "designation").
		Values(staff.FullName, staff.Email, staff.Mobile, staff.Designation).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert staff sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert staff: %w", err)
	}

	return id, nil
}

// Update rewrites the staff member profile.
func (r *StaffRepository) Update(ctx context.Context, staff domain.StaffMember) error {
	stmt, args, err := r.builder.
		Update("onehealth.staff_members").
		Set("full_name", staff.FullName).
		Set("email", staff.Email).
		Set("mobile", staff.Mobile).
		Set("designation", staff.Designation).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": staff.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update staff sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a staff member.
func (r *StaffRepository) Delete(ctx context.Context, staffID int64) error {
	stmt, args, err := r.builder.
		Delete("onehealth.staff_members").
		Where(squirrel.Eq{"id": staffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete staff sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetByID retrieves a staff member by identifier.
func (r *StaffRepository) GetByID(ctx context.Context, staffID int64) (*domain.StaffMember, error) {
	stmt, args, err := r.builder.
		Select(staffColumns...).
		From("onehealth.staff_members").
		Where(squirrel.Eq{"id": staffID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select staff sql: %w", err)
	}

	var staff domain.StaffMember
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&staff.ID,
		&staff.FullName,
		&staff.Email,
		&staff.Mobile,
		&staff.Designation,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan staff: %w", err)
	}

	return &staff, nil
}

// List returns every staff member in name order.
func (r *StaffRepository) List(ctx context.Context) ([]domain.StaffMember, error) {
	stmt, args, err := r.builder.
		Select(staffColumns...).
		From("onehealth.staff_members").
		OrderBy("full_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list staff sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var members []domain.StaffMember
	for rows.Next() {
		var staff domain.StaffMember
		if err := rows.Scan(
			&staff.ID,
			&staff.FullName,
			&staff.Email,
			&staff.Mobile,
			&staff.Designation,
			&staff.CreatedAt,
			&staff.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		members = append(members, staff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate staff: %w", err)
	}

	return members, nil
}

var _ port.StaffRepository = (*StaffRepository)(nil)
