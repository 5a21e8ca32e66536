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

// InvoiceRepository implements port.InvoiceRepository using PostgreSQL.
type InvoiceRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewInvoiceRepository wires a PostgreSQL-backed invoice repository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var invoiceColumns = []string{
	"id",
	"case_id",
	"patient_id",
	"discount_percent",
	"sub_total",
	"discount_amount",
	"tax_rate",
	"tax_amount",
	"grand_total",
	"pending_amount",
	"payment_mode",
	"issue_date",
	"due_date",
	"created_at",
	"updated_at",
}

// Create inserts a new invoice row and returns its id.
func (r *InvoiceRepository) Create(ctx context.Context, invoice domain.Invoice) (int64, error) {
	stmt, args, err := r.builder.
		Insert("onehealth.invoices").
		Columns(
			"case_id",
			"patient_id",
			"discount_percent",
			"sub_total",
			"discount_amount",
			"tax_rate",
			"tax_amount",
			"grand_total",
			"pending_amount",
			"payment_mode",
			"issue_date",
			"due_date",
		).
		Values(
			invoice.CaseID,
			invoice.PatientID,
			invoice.DiscountPercent,
			invoice.SubTotal,
			invoice.DiscountAmount,
			invoice.TaxRate,
			invoice.TaxAmount,
			invoice.GrandTotal,
			invoice.PendingAmount,
			invoice.PaymentMode,
			invoice.IssueDate,
			invoice.DueDate,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert invoice sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert invoice: %w", err)
	}

	return id, nil
}

// Update rewrites the computed invoice amounts.
func (r *InvoiceRepository) Update(ctx context.Context, invoice domain.Invoice) error {
	stmt, args, err := r.builder.
		Update("onehealth.invoices").
		Set("discount_percent", invoice.DiscountPercent).
		Set("sub_total", invoice.SubTotal).
		Set("discount_amount", invoice.DiscountAmount).
		Set("tax_rate", invoice.TaxRate).
		Set("tax_amount", invoice.TaxAmount).
		Set("grand_total", invoice.GrandTotal).
		Set("pending_amount", invoice.PendingAmount).
		Set("payment_mode", invoice.PaymentMode).
		Set("due_date", invoice.DueDate).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": invoice.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update invoice sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetByID retrieves an invoice by identifier.
func (r *InvoiceRepository) GetByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	stmt, args, err := r.builder.
		Select(invoiceColumns...).
		From("onehealth.invoices").
		Where(squirrel.Eq{"id": invoiceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select invoice sql: %w", err)
	}

	invoice, err := scanInvoiceRow(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return invoice, nil
}

// ListByPatient returns the patient's invoices newest first.
func (r *InvoiceRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.Invoice, error) {
	stmt, args, err := r.builder.
		Select(invoiceColumns...).
		From("onehealth.invoices").
		Where(squirrel.Eq{"patient_id": patientID}).
		OrderBy("issue_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list invoices sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoiceRow(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}

	return invoices, nil
}

// RecordPayment inserts a payment row and returns its id.
func (r *InvoiceRepository) RecordPayment(ctx context.Context, payment domain.Payment) (int64, error) {
	stmt, args, err := r.builder.
		Insert("onehealth.payments").
		Columns("invoice_id", "case_id", "amount_paid", "discount_percent", "payment_mode", "paid_at").
		Values(payment.InvoiceID, payment.CaseID, payment.AmountPaid, payment.DiscountPercent, payment.PaymentMode, payment.PaidAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert payment sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}

	return id, nil
}

// ListPaymentsByCase returns every payment recorded against a case, oldest
// first. The sum of these is the invoice's prior-paid amount.
func (r *InvoiceRepository) ListPaymentsByCase(ctx context.Context, caseID int64) ([]domain.Payment, error) {
	stmt, args, err := r.builder.
		Select("id", "invoice_id", "case_id", "amount_paid", "discount_percent", "payment_mode", "paid_at").
		From("onehealth.payments").
		Where(squirrel.Eq{"case_id": caseID}).
		OrderBy("paid_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list payments sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.InvoiceID,
			&payment.CaseID,
			&payment.AmountPaid,
			&payment.DiscountPercent,
			&payment.PaymentMode,
			&payment.PaidAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	return payments, nil
}

func scanInvoiceRow(row pgx.Row) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := row.Scan(
		&invoice.ID,
		&invoice.CaseID,
		&invoice.PatientID,
		&invoice.DiscountPercent,
		&invoice.SubTotal,
		&invoice.DiscountAmount,
		&invoice.TaxRate,
		&invoice.TaxAmount,
		&invoice.GrandTotal,
		&invoice.PendingAmount,
		&invoice.PaymentMode,
		&invoice.IssueDate,
		&invoice.DueDate,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &invoice, nil
}

var _ port.InvoiceRepository = (*InvoiceRepository)(nil)
