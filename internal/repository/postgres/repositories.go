package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgExecutor abstracts over *pgxpool.Pool and pgx.Tx so repositories can run
// inside or outside a transaction. pgxmock satisfies it in tests.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Users              *UserRepository
	FeaturePermissions *FeaturePermissionRepository
	Patients           *PatientRepository
	CaseHistories      *CaseHistoryRepository
	Invoices           *InvoiceRepository
	Appointments       *AppointmentRepository
	Staff              *StaffRepository
	Medicines          *MedicineRepository
	Treatments         *TreatmentRepository
	MedicalConditions  *MedicalConditionRepository
	Reminders          *ReminderRepository
	Expenses           *ExpenseRepository
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:              NewUserRepository(pool),
		FeaturePermissions: NewFeaturePermissionRepository(pool),
		Patients:           NewPatientRepository(pool),
		CaseHistories:      NewCaseHistoryRepository(pool),
		Invoices:           NewInvoiceRepository(pool),
		Appointments:       NewAppointmentRepository(pool),
		Staff:              NewStaffRepository(pool),
		Medicines:          NewMedicineRepository(pool),
		Treatments:         NewTreatmentRepository(pool),
		MedicalConditions:  NewMedicalConditionRepository(pool),
		Reminders:          NewReminderRepository(pool),
		Expenses:           NewExpenseRepository(pool),
	}
}
