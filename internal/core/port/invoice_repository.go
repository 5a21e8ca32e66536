package port

import (
	"context"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// InvoiceRepository deals with invoice and payment storage.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice domain.Invoice) (int64, error)
	Update(ctx context.Context, invoice domain.Invoice) error
	GetByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
	ListByPatient(ctx context.Context, patientID int64) ([]domain.Invoice, error)
	RecordPayment(ctx context.Context, payment domain.Payment) (int64, error)
	ListPaymentsByCase(ctx context.Context, caseID int64) ([]domain.Payment, error)
}
