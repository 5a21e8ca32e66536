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

// MedicineRepository implements port.MedicineRepository using PostgreSQL.
type MedicineRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewMedicineRepository wires a PostgreSQL-backed medicine repository.
func NewMedicineRepository(pool *pgxpool.Pool) *MedicineRepository {
	return &MedicineRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new medicine and returns its id.
func (r *MedicineRepository) Create(ctx context.Context, medicine domain.Medicine) (int64, error) {
	stmt, args, err := r.builder.
		Insert("onehealth.medicines").
		Columns("name", "description").
		Values(medicine.Name, medicine.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert medicine sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert medicine: %w", err)
	}

	return id, nil
}

// Update rewrites a medicine entry.
func (r *MedicineRepository) Update(ctx context.Context, medicine domain.Medicine) error {
	stmt, args, err := r.builder.
		Update("onehealth.medicines").
		Set("name", medicine.Name).
		Set("description", medicine.Description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": medicine.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update medicine sql: %w", err)
	}

	return execAffectingOne(ctx, r.exec, stmt, args, "update medicine")
}

// Delete removes a medicine entry.
func (r *MedicineRepository) Delete(ctx context.Context, medicineID int64) error {
	stmt, args, err := r.builder.
		Delete("onehealth.medicines").
		Where(squirrel.Eq{"id": medicineID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete medicine sql: %w", err)
	}

	return execAffectingOne(ctx, r.exec, stmt, args, "delete medicine")
}

// GetByID retrieves a medicine by identifier.
func (r *MedicineRepository) GetByID(ctx context.Context, medicineID int64) (*domain.Medicine, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "description", "created_at", "updated_at").
		From("onehealth.medicines").
		Where(squirrel.Eq{"id": medicineID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select medicine sql: %w", err)
	}

	var medicine domain.Medicine
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&medicine.ID,
		&medicine.Name,
		&medicine.Description,
		&medicine.CreatedAt,
		&medicine.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan medicine: %w", err)
	}

	return &medicine, nil
}

// List returns every medicine in name order.
func (r *MedicineRepository) List(ctx context.Context) ([]domain.Medicine, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "description", "created_at", "updated_at").
		From("onehealth.medicines").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list medicines sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()

	var medicines []domain.Medicine
	for rows.Next() {
		var medicine domain.Medicine
		if err := rows.Scan(&medicine.ID, &medicine.Name, &medicine.Description, &medicine.CreatedAt, &medicine.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		medicines = append(medicines, medicine)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medicines: %w", err)
	}

	return medicines, nil
}

// TreatmentRepository implements port.TreatmentRepository using PostgreSQL.
type TreatmentRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewTreatmentRepository wires a PostgreSQL-backed treatment repository.
func NewTreatmentRepository(pool *pgxpool.Pool) *TreatmentRepository {
	return &TreatmentRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new treatment and returns its id. Cost is stored as text;
// malformed values degrade to zero at invoice time instead of failing here.
func (r *TreatmentRepository) Create(ctx context.Context, treatment domain.Treatment) (int64, error) {
	stmt, args, err := r.builder.
		Insert("onehealth.treatments").
		Columns("name", "description", "cost").
		Values(treatment.Name, treatment.Description, treatment.Cost).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert treatment sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert treatment: %w", err)
	}

	return id, nil
}

// Update rewrites a treatment entry.
func (r *TreatmentRepository) Update(ctx context.Context, treatment domain.Treatment) error {
	stmt, args, err := r.builder.
		Update("onehealth.treatments").
		Set("name", treatment.Name).
		Set("description", treatment.Description).
		Set("cost", treatment.Cost).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": treatment.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update treatment sql: %w", err)
	}

	return execAffectingOne(ctx, r.exec, stmt, args, "update treatment")
}

// Delete removes a treatment entry.
func (r *TreatmentRepository) Delete(ctx context.Context, treatmentID int64) error {
	stmt, args, err := r.builder.
		Delete("onehealth.treatments").
		Where(squirrel.Eq{"id": treatmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete treatment sql: %w", err)
	}

	return execAffectingOne(ctx, r.exec, stmt, args, "delete treatment")
}

// GetByID retrieves a treatment by identifier.
func (r *TreatmentRepository) GetByID(ctx context.Context, treatmentID int64) (*domain.Treatment, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "description", "cost", "created_at", "updated_at").
		From("onehealth.treatments").
		Where(squirrel.Eq{"id": treatmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select treatment sql: %w", err)
	}

	var treatment domain.Treatment
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&treatment.ID,
		&treatment.Name,
		&treatment.Description,
		&treatment.Cost,
		&treatment.CreatedAt,
		&treatment.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan treatment: %w", err)
	}

	return &treatment, nil
}

// List returns every treatment in name order.
func (r *TreatmentRepository) List(ctx context.Context) ([]domain.Treatment, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "description", "cost", "created_at", "updated_at").
		From("onehealth.treatments").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list treatments sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	defer rows.Close()

	var treatments []domain.Treatment
	for rows.Next() {
		var treatment domain.Treatment
		if err := rows.Scan(
			&treatment.ID,
			&treatment.Name,
			&treatment.Description,
			&treatment.Cost,
			&treatment.CreatedAt,
			&treatment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan treatment: %w", err)
		}
		treatments = append(treatments, treatment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate treatments: %w", err)
	}

	return treatments, nil
}

// MedicalConditionRepository implements port.MedicalConditionRepository using
// PostgreSQL.
type MedicalConditionRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewMedicalConditionRepository wires a PostgreSQL-backed condition repository.
func NewMedicalConditionRepository(pool *pgxpool.Pool) *MedicalConditionRepository {
	return &MedicalConditionRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new condition and returns its id.
func (r *MedicalConditionRepository) Create(ctx context.Context, condition domain.MedicalCondition) (int64, error) {
	stmt, args, err := r.builder.
		Insert("onehealth.medical_conditions").
		Columns("name", "description").
		Values(condition.Name, condition.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert condition sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert condition: %w", err)
	}

	return id, nil
}

// Update rewrites a condition entry.
func (r *MedicalConditionRepository) Update(ctx context.Context, condition domain.MedicalCondition) error {
	stmt, args, err := r.builder.
		Update("onehealth.medical_conditions").
		Set("name", condition.Name).
		Set("description", condition.Description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": condition.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update condition sql: %w", err)
	}

	return execAffectingOne(ctx, r.exec, stmt, args, "update condition")
}

// Delete removes a condition entry.
func (r *MedicalConditionRepository) Delete(ctx context.Context, conditionID int64) error {
	stmt, args, err := r.builder.
		Delete("onehealth.medical_conditions").
		Where(squirrel.Eq{"id": conditionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete condition sql: %w", err)
	}

	return execAffectingOne(ctx, r.exec, stmt, args, "delete condition")
}

// GetByID retrieves a condition by identifier.
func (r *MedicalConditionRepository) GetByID(ctx context.Context, conditionID int64) (*domain.MedicalCondition, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "description", "created_at", "updated_at").
		From("onehealth.medical_conditions").
		Where(squirrel.Eq{"id": conditionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select condition sql: %w", err)
	}

	var condition domain.MedicalCondition
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&condition.ID,
		&condition.Name,
		&condition.Description,
		&condition.CreatedAt,
		&condition.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan condition: %w", err)
	}

	return &condition, nil
}

// List returns every condition in name order.
func (r *MedicalConditionRepository) List(ctx context.Context) ([]domain.MedicalCondition, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "description", "created_at", "updated_at").
		From("onehealth.medical_conditions").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list conditions sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list conditions: %w", err)
	}
	defer rows.Close()

	var conditions []domain.MedicalCondition
	for rows.Next() {
		var condition domain.MedicalCondition
		if err := rows.Scan(
			&condition.ID,
			&condition.Name,
			&condition.Description,
			&condition.CreatedAt,
			&condition.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan condition: %w", err)
		}
		conditions = append(conditions, condition)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conditions: %w", err)
	}

	return conditions, nil
}

func execAffectingOne(ctx context.Context, exec pgExecutor, stmt string, args []any, op string) error {
	tag, err := exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var (
	_ port.MedicineRepository         = (*MedicineRepository)(nil)
	_ port.TreatmentRepository        = (*TreatmentRepository)(nil)
	_ port.MedicalConditionRepository = (*MedicalConditionRepository)(nil)
)
