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

// PatientRepository implements port.PatientRepository using PostgreSQL.
type PatientRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewPatientRepository wires a PostgreSQL-backed patient repository.
func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var patientColumns = []string{
	"id",
	"full_name",
	"email",
	"mobile",
	"alt_mobile",
	"address",
	"dob",
	"insurance_policy",
	"password_hash",
	"created_at",
	"updated_at",
}

// Create inserts a new patient row and returns its id.
func (r *PatientRepository) Create(ctx context.Context, patient domain.Patient) (int64, error) {
	stmt, args, err := r.builder.
		Insert("onehealth.patients").
		Columns(
			"full_name",
			"email",
			"mobile",
			"alt_mobile",
			"address",
			"dob",
			"insurance_policy",
			"password_hash",
		).
		Values(
			patient.FullName,
			patient.Email,
			patient.Mobile,
			patient.AltMobile,
			patient.Address,
			patient.DOB,
			patient.InsurancePolicy,
			patient.PasswordHash,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert patient sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert patient: %w", err)
	}

	return id, nil
}

// Update rewrites the patient profile.
func (r *PatientRepository) Update(ctx context.Context, patient domain.Patient) error {
	stmt, args, err := r.builder.
		Update("onehealth.patients").
		Set("full_name", patient.FullName).
		Set("email", patient.Email).
		Set("mobile", patient.Mobile).
		Set("alt_mobile", patient.AltMobile).
		Set("address", patient.Address).
		Set("dob", patient.DOB).
		Set("insurance_policy", patient.InsurancePolicy).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": patient.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update patient sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a patient row.
func (r *PatientRepository) Delete(ctx context.Context, patientID int64) error {
	stmt, args, err := r.builder.
		Delete("onehealth.patients").
		Where(squirrel.Eq{"id": patientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete patient sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetByID retrieves a patient by identifier.
func (r *PatientRepository) GetByID(ctx context.Context, patientID int64) (*domain.Patient, error) {
	stmt, args, err := r.builder.
		Select(patientColumns...).
		From("onehealth.patients").
		Where(squirrel.Eq{"id": patientID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select patient sql: %w", err)
	}

	return scanPatient(r.exec.QueryRow(ctx, stmt, args...))
}

// GetByEmail retrieves a patient by email for the customer login flow.
func (r *PatientRepository) GetByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	stmt, args, err := r.builder.
		Select(patientColumns...).
		From("onehealth.patients").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select patient sql: %w", err)
	}

	return scanPatient(r.exec.QueryRow(ctx, stmt, args...))
}

// List returns patients matching the filter, newest first.
func (r *PatientRepository) List(ctx context.Context, filter port.PatientFilter) ([]domain.Patient, error) {
	query := r.builder.
		Select(patientColumns...).
		From("onehealth.patients").
		OrderBy("created_at DESC")

	query = applyPatientFilter(query, filter)

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list patients sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var patients []domain.Patient
	for rows.Next() {
		patient, err := scanPatientRow(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, *patient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}

	return patients, nil
}

// Count returns how many patients match the filter.
func (r *PatientRepository) Count(ctx context.Context, filter port.PatientFilter) (int, error) {
	query := r.builder.
		Select("count(*)").
		From("onehealth.patients")

	query = applyPatientFilter(query, filter)

	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count patients sql: %w", err)
	}

	var count int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}

	return count, nil
}

func applyPatientFilter(query squirrel.SelectBuilder, filter port.PatientFilter) squirrel.SelectBuilder {
	if filter.Search == "" {
		return query
	}
	pattern := fmt.Sprintf("%%%s%%", filter.Search)
	return query.Where(squirrel.Or{
		squirrel.ILike{"full_name": pattern},
		squirrel.ILike{"email": pattern},
		squirrel.ILike{"mobile": pattern},
	})
}

func scanPatient(row pgx.Row) (*domain.Patient, error) {
	patient, err := scanPatientRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return patient, nil
}

func scanPatientRow(row pgx.Row) (*domain.Patient, error) {
	var patient domain.Patient
	if err := row.Scan(
		&patient.ID,
		&patient.FullName,
		&patient.Email,
		&patient.Mobile,
		&patient.AltMobile,
		&patient.Address,
		&patient.DOB,
		&patient.InsurancePolicy,
		&patient.PasswordHash,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan patient: %w", err)
	}
	return &patient, nil
}

var _ port.PatientRepository = (*PatientRepository)(nil)
