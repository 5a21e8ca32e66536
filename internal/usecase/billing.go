package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
)

// ErrCaseHasNoTreatments indicates an invoice was requested for a case with
// nothing billable on it.
var ErrCaseHasNoTreatments = errors.New("billing: case has no billable treatments")

// BillingService derives invoice totals from a case's treatments, persists
// invoices and records payments against them.
type BillingService struct {
	invoices  port.InvoiceRepository
	cases     port.CaseHistoryRepository
	publisher port.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewBillingService wires the billing service.
func NewBillingService(
	invoices port.InvoiceRepository,
	cases port.CaseHistoryRepository,
	publisher port.EventPublisher,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		invoices:  invoices,
		cases:     cases,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// InvoicePreview carries the computed amounts before anything is persisted,
// so the dashboard can render totals live while the operator adjusts the
// discount and payment fields.
type InvoicePreview struct {
	CaseID    int64
	PatientID int64
	LineItems []domain.InvoiceLineItem
	Totals    domain.Totals
}

// Preview computes rounded totals for a case without persisting anything.
// PriorPaid is derived from the payments already recorded against the case.
func (s *BillingService) Preview(ctx context.Context, caseID int64, discountPercent, currentPayment float64) (*InvoicePreview, error) {
	caseHistory, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("load case %d: %w", caseID, err)
	}

	priorPaid, err := s.priorPaid(ctx, caseID)
	if err != nil {
		return nil, err
	}

	items := caseHistory.TreatmentLineItems()
	totals := domain.ComputeInvoiceTotals(domain.TotalsInput{
		LineItems:       items,
		DiscountPercent: discountPercent,
		PriorPaid:       priorPaid,
		CurrentPayment:  currentPayment,
	})

	return &InvoicePreview{
		CaseID:    caseID,
		PatientID: caseHistory.PatientID,
		LineItems: items,
		Totals:    totals.Rounded(),
	}, nil
}

// IssueInvoiceInput collects the operator's inputs for issuing an invoice.
type IssueInvoiceInput struct {
	CaseID          int64
	DiscountPercent float64
	CurrentPayment  float64
	PaymentMode     string
	DueDate         time.Time
}

// IssueInvoice computes totals for the case, validates the payment against
// the outstanding balance, persists the invoice plus payment and publishes
// the issued event.
func (s *BillingService) IssueInvoice(ctx context.Context, in IssueInvoiceInput) (*domain.Invoice, error) {
	caseHistory, err := s.cases.GetByID(ctx, in.CaseID)
	if err != nil {
		return nil, fmt.Errorf("load case %d: %w", in.CaseID, err)
	}

	items := caseHistory.TreatmentLineItems()
	if len(items) == 0 {
		return nil, ErrCaseHasNoTreatments
	}

	priorPaid, err := s.priorPaid(ctx, in.CaseID)
	if err != nil {
		return nil, err
	}

	totals := domain.ComputeInvoiceTotals(domain.TotalsInput{
		LineItems:       items,
		DiscountPercent: in.DiscountPercent,
		PriorPaid:       priorPaid,
		CurrentPayment:  in.CurrentPayment,
	})

	if err := domain.ValidatePaymentAmount(in.CurrentPayment, totals.CurrentBalance); err != nil {
		return nil, err
	}

	rounded := totals.Rounded()
	now := s.now().UTC()

	invoice := domain.Invoice{
		CaseID:          in.CaseID,
		PatientID:       caseHistory.PatientID,
		DiscountPercent: in.DiscountPercent,
		SubTotal:        rounded.SubTotal,
		DiscountAmount:  rounded.DiscountAmount,
		TaxRate:         domain.TaxRatePercent,
		TaxAmount:       rounded.TaxAmount,
		GrandTotal:      rounded.GrandTotal,
		PendingAmount:   rounded.FinalPending,
		PaymentMode:     in.PaymentMode,
		IssueDate:       now,
		DueDate:         in.DueDate,
	}

	invoiceID, err := s.invoices.Create(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("persist invoice: %w", err)
	}
	invoice.ID = invoiceID

	if in.CurrentPayment > 0 {
		payment := domain.Payment{
			InvoiceID:       invoiceID,
			CaseID:          in.CaseID,
			AmountPaid:      in.CurrentPayment,
			DiscountPercent: in.DiscountPercent,
			PaymentMode:     in.PaymentMode,
			PaidAt:          now,
		}
		if _, err := s.invoices.RecordPayment(ctx, payment); err != nil {
			return nil, fmt.Errorf("record payment: %w", err)
		}
	}

	if err := s.publisher.PublishInvoiceIssued(ctx, domain.InvoiceIssuedEvent{
		InvoiceID:     invoiceID,
		CaseID:        in.CaseID,
		PatientID:     caseHistory.PatientID,
		GrandTotal:    rounded.GrandTotal,
		PendingAmount: rounded.FinalPending,
		IssuedAt:      now,
	}); err != nil {
		s.logger.Warn("invoice issued event not published",
			zap.Int64("invoice_id", invoiceID),
			zap.Error(err),
		)
	}

	return &invoice, nil
}

// RecordPayment validates and records an additional payment against an
// existing invoice, then updates its pending amount.
func (s *BillingService) RecordPayment(ctx context.Context, invoiceID int64, amount float64, paymentMode string) (*domain.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("load invoice %d: %w", invoiceID, err)
	}

	if err := domain.ValidatePaymentAmount(amount, invoice.PendingAmount); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if _, err := s.invoices.RecordPayment(ctx, domain.Payment{
		InvoiceID:   invoiceID,
		CaseID:      invoice.CaseID,
		AmountPaid:  amount,
		PaymentMode: paymentMode,
		PaidAt:      now,
	}); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	invoice.PendingAmount = domain.RoundMoney(invoice.PendingAmount - amount)
	invoice.PaymentMode = paymentMode
	if err := s.invoices.Update(ctx, *invoice); err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}

	return invoice, nil
}

// GetInvoice returns a single invoice.
func (s *BillingService) GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, invoiceID)
}

// ListInvoicesByPatient returns the patient's invoices newest first.
func (s *BillingService) ListInvoicesByPatient(ctx context.Context, patientID int64) ([]domain.Invoice, error) {
	return s.invoices.ListByPatient(ctx, patientID)
}

// PastPaymentsByCase returns every payment already recorded against a case.
func (s *BillingService) PastPaymentsByCase(ctx context.Context, caseID int64) ([]domain.Payment, error) {
	return s.invoices.ListPaymentsByCase(ctx, caseID)
}

func (s *BillingService) priorPaid(ctx context.Context, caseID int64) (float64, error) {
	payments, err := s.invoices.ListPaymentsByCase(ctx, caseID)
	if err != nil {
		return 0, fmt.Errorf("load payments for case %d: %w", caseID, err)
	}

	var total float64
	for _, payment := range payments {
		total += payment.AmountPaid
	}
	return total, nil
}
