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

// CaseHistoryRepository implements port.CaseHistoryRepository using
// PostgreSQL. Writes touch the case row plus three link tables inside one
// transaction.
type CaseHistoryRepository struct {
	pool    *pgxpool.Pool
	builder squirrel.StatementBuilderType
}

// NewCaseHistoryRepository wires a PostgreSQL-backed case history repository.
func NewCaseHistoryRepository(pool *pgxpool.Pool) *CaseHistoryRepository {
	return &CaseHistoryRepository{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a case history with its linked catalog entries.
func (r *CaseHistoryRepository) Create(ctx context.Context, caseHistory domain.CaseHistory, links port.CaseHistoryLinks) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin create case history: %w", err)
	}
	defer tx.Rollback(ctx)

	stmt, args, err := r.builder.
		Insert("onehealth.case_histories").
		Columns("patient_id", "staff_id", "notes", "case_date").
		Values(caseHistory.PatientID, caseHistory.StaffID, caseHistory.Notes, caseHistory.CaseDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert case history sql: %w", err)
	}

	var caseID int64
	if err := tx.QueryRow(ctx, stmt, args...).Scan(&caseID); err != nil {
		return 0, fmt.Errorf("insert case history: %w", err)
	}

	if err := r.insertLinks(ctx, tx, caseID, links); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit create case history: %w", err)
	}

	return caseID, nil
}

// Update rewrites a case history and replaces its catalog links.
func (r *CaseHistoryRepository) Update(ctx context.Context, caseHistory domain.CaseHistory, links port.CaseHistoryLinks) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update case history: %w", err)
	}
	defer tx.Rollback(ctx)

	stmt, args, err := r.builder.
		Update("onehealth.case_histories").
		Set("patient_id", caseHistory.PatientID).
		Set("staff_id", caseHistory.StaffID).
		Set("notes", caseHistory.Notes).
		Set("case_date", caseHistory.CaseDate).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": caseHistory.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update case history sql: %w", err)
	}

	tag, err := tx.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update case history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	for _, table := range []string{"case_conditions", "case_treatments", "case_medicines"} {
		delStmt, delArgs, err := r.builder.
			Delete("onehealth." + table).
			Where(squirrel.Eq{"case_id": caseHistory.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build clear %s sql: %w", table, err)
		}
		if _, err := tx.Exec(ctx, delStmt, delArgs...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := r.insertLinks(ctx, tx, caseHistory.ID, links); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update case history: %w", err)
	}

	return nil
}

func (r *CaseHistoryRepository) insertLinks(ctx context.Context, tx pgx.Tx, caseID int64, links port.CaseHistoryLinks) error {
	insert := func(table, column string, ids []int64) error {
		if len(ids) == 0 {
			return nil
		}
		query := r.builder.Insert("onehealth." + table).Columns("case_id", column)
		for _, id := range ids {
			query = query.Values(caseID, id)
		}
		stmt, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("build insert %s sql: %w", table, err)
		}
		if _, err := tx.Exec(ctx, stmt, args...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
		return nil
	}

	if err := insert("case_conditions", "condition_id", links.ConditionIDs); err != nil {
		return err
	}
	if err := insert("case_treatments", "treatment_id", links.TreatmentIDs); err != nil {
		return err
	}
	return insert("case_medicines", "medicine_id", links.MedicineIDs)
}

// Delete removes a case history. Link rows cascade in the schema.
func (r *CaseHistoryRepository) Delete(ctx context.Context, caseID int64) error {
	stmt, args, err := r.builder.
		Delete("onehealth.case_histories").
		Where(squirrel.Eq{"id": caseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete case history sql: %w", err)
	}

	tag, err := r.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete case history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetByID retrieves a case history with its linked conditions, treatments and
// medicines hydrated.
func (r *CaseHistoryRepository) GetByID(ctx context.Context, caseID int64) (*domain.CaseHistory, error) {
	stmt, args, err := r.builder.
		Select("id", "patient_id", "staff_id", "notes", "case_date", "created_at", "updated_at").
		From("onehealth.case_histories").
		Where(squirrel.Eq{"id": caseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select case history sql: %w", err)
	}

	var caseHistory domain.CaseHistory
	if err := r.pool.QueryRow(ctx, stmt, args...).Scan(
		&caseHistory.ID,
		&caseHistory.PatientID,
		&caseHistory.StaffID,
		&caseHistory.Notes,
		&caseHistory.CaseDate,
		&caseHistory.CreatedAt,
		&caseHistory.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan case history: %w", err)
	}

	if err := r.hydrateLinks(ctx, &caseHistory); err != nil {
		return nil, err
	}

	return &caseHistory, nil
}

// ListByPatient returns the patient's case histories newest first, links
// hydrated.
func (r *CaseHistoryRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.CaseHistory, error) {
	stmt, args, err := r.builder.
		Select("id", "patient_id", "staff_id", "notes", "case_date", "created_at", "updated_at").
		From("onehealth.case_histories").
		Where(squirrel.Eq{"patient_id": patientID}).
		OrderBy("case_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list case histories sql: %w", err)
	}

	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list case histories: %w", err)
	}
	defer rows.Close()

	var cases []domain.CaseHistory
	for rows.Next() {
		var caseHistory domain.CaseHistory
		if err := rows.Scan(
			&caseHistory.ID,
			&caseHistory.PatientID,
			&caseHistory.StaffID,
			&caseHistory.Notes,
			&caseHistory.CaseDate,
			&caseHistory.CreatedAt,
			&caseHistory.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan case history: %w", err)
		}
		cases = append(cases, caseHistory)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case histories: %w", err)
	}

	for i := range cases {
		if err := r.hydrateLinks(ctx, &cases[i]); err != nil {
			return nil, err
		}
	}

	return cases, nil
}

func (r *CaseHistoryRepository) hydrateLinks(ctx context.Context, caseHistory *domain.CaseHistory) error {
	conditions, err := r.linkedConditions(ctx, caseHistory.ID)
	if err != nil {
		return err
	}
	treatments, err := r.linkedTreatments(ctx, caseHistory.ID)
	if err != nil {
		return err
	}
	medicines, err := r.linkedMedicines(ctx, caseHistory.ID)
	if err != nil {
		return err
	}

	caseHistory.Conditions = conditions
	caseHistory.Treatments = treatments
	caseHistory.Medicines = medicines
	return nil
}

func (r *CaseHistoryRepository) linkedConditions(ctx context.Context, caseID int64) ([]domain.MedicalCondition, error) {
	stmt, args, err := r.builder.
		Select("c.id", "c.name", "c.description", "c.created_at", "c.updated_at").
		From("onehealth.case_conditions l").
		Join("onehealth.medical_conditions c ON c.id = l.condition_id").
		Where(squirrel.Eq{"l.case_id": caseID}).
		OrderBy("c.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build linked conditions sql: %w", err)
	}

	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list linked conditions: %w", err)
	}
	defer rows.Close()

	var conditions []domain.MedicalCondition
	for rows.Next() {
		var condition domain.MedicalCondition
		if err := rows.Scan(&condition.ID, &condition.Name, &condition.Description, &condition.CreatedAt, &condition.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan linked condition: %w", err)
		}
		conditions = append(conditions, condition)
	}
	return conditions, rows.Err()
}

func (r *CaseHistoryRepository) linkedTreatments(ctx context.Context, caseID int64) ([]domain.Treatment, error) {
	stmt, args, err := r.builder.
		Select("t.id", "t.name", "t.description", "t.cost", "t.created_at", "t.updated_at").
		From("onehealth.case_treatments l").
		Join("onehealth.treatments t ON t.id = l.treatment_id").
		Where(squirrel.Eq{"l.case_id": caseID}).
		OrderBy("t.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build linked treatments sql: %w", err)
	}

	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list linked treatments: %w", err)
	}
	defer rows.Close()

	var treatments []domain.Treatment
	for rows.Next() {
		var treatment domain.Treatment
		if err := rows.Scan(&treatment.ID, &treatment.Name, &treatment.Description, &treatment.Cost, &treatment.CreatedAt, &treatment.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan linked treatment: %w", err)
		}
		treatments = append(treatments, treatment)
	}
	return treatments, rows.Err()
}

func (r *CaseHistoryRepository) linkedMedicines(ctx context.Context, caseID int64) ([]domain.Medicine, error) {
	stmt, args, err := r.builder.
		Select("m.id", "m.name", "m.description", "m.created_at", "m.updated_at").
		From("onehealth.case_medicines l").
		Join("onehealth.medicines m ON m.id = l.medicine_id").
		Where(squirrel.Eq{"l.case_id": caseID}).
		OrderBy("m.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build linked medicines sql: %w", err)
	}

	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list linked medicines: %w", err)
	}
	defer rows.Close()

	var medicines []domain.Medicine
	for rows.Next() {
		var medicine domain.Medicine
		if err := rows.Scan(&medicine.ID, &medicine.Name, &medicine.Description, &medicine.CreatedAt, &medicine.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan linked medicine: %w", err)
		}
		medicines = append(medicines, medicine)
	}
	return medicines, rows.Err()
}

var _ port.CaseHistoryRepository = (*CaseHistoryRepository)(nil)
