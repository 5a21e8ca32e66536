package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
)

type stubInvoiceRepo struct {
	create             func(ctx context.Context, invoice domain.Invoice) (int64, error)
	update             func(ctx context.Context, invoice domain.Invoice) error
	getByID            func(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
	listByPatient      func(ctx context.Context, patientID int64) ([]domain.Invoice, error)
	recordPayment      func(ctx context.Context, payment domain.Payment) (int64, error)
	listPaymentsByCase func(ctx context.Context, caseID int64) ([]domain.Payment, error)
}

func (s *stubInvoiceRepo) Create(ctx context.Context, invoice domain.Invoice) (int64, error) {
	if s.create == nil {
		panic("unexpected Create call")
	}
	return s.create(ctx, invoice)
}

func (s *stubInvoiceRepo) Update(ctx context.Context, invoice domain.Invoice) error {
	if s.update == nil {
		panic("unexpected Update call")
	}
	return s.update(ctx, invoice)
}

func (s *stubInvoiceRepo) GetByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	if s.getByID == nil {
		panic("unexpected GetByID call")
	}
	return s.getByID(ctx, invoiceID)
}

func (s *stubInvoiceRepo) ListByPatient(ctx context.Context, patientID int64) ([]domain.Invoice, error) {
	if s.listByPatient == nil {
		panic("unexpected ListByPatient call")
	}
	return s.listByPatient(ctx, patientID)
}

func (s *stubInvoiceRepo) RecordPayment(ctx context.Context, payment domain.Payment) (int64, error) {
	if s.recordPayment == nil {
		panic("unexpected RecordPayment call")
	}
	return s.recordPayment(ctx, payment)
}

func (s *stubInvoiceRepo) ListPaymentsByCase(ctx context.Context, caseID int64) ([]domain.Payment, error) {
	if s.listPaymentsByCase == nil {
		panic("unexpected ListPaymentsByCase call")
	}
	return s.listPaymentsByCase(ctx, caseID)
}

type stubCaseRepo struct {
	getByID func(ctx context.Context, caseID int64) (*domain.CaseHistory, error)
}

func (s *stubCaseRepo) Create(context.Context, domain.CaseHistory, port.CaseHistoryLinks) (int64, error) {
	panic("unexpected Create call")
}

func (s *stubCaseRepo) Update(context.Context, domain.CaseHistory, port.CaseHistoryLinks) error {
	panic("unexpected Update call")
}

func (s *stubCaseRepo) Delete(context.Context, int64) error {
	panic("unexpected Delete call")
}

func (s *stubCaseRepo) GetByID(ctx context.Context, caseID int64) (*domain.CaseHistory, error) {
	if s.getByID == nil {
		panic("unexpected GetByID call")
	}
	return s.getByID(ctx, caseID)
}

func (s *stubCaseRepo) ListByPatient(context.Context, int64) ([]domain.CaseHistory, error) {
	panic("unexpected ListByPatient call")
}

type stubPublisher struct {
	invoiceIssued func(ctx context.Context, event domain.InvoiceIssuedEvent) error
}

func (s *stubPublisher) PublishInvoiceIssued(ctx context.Context, event domain.InvoiceIssuedEvent) error {
	if s.invoiceIssued == nil {
		return nil
	}
	return s.invoiceIssued(ctx, event)
}

func (s *stubPublisher) PublishAppointmentBooked(context.Context, domain.AppointmentBookedEvent) error {
	return nil
}

func (s *stubPublisher) PublishReminderScheduled(context.Context, domain.ReminderScheduledEvent) error {
	return nil
}

func (s *stubPublisher) PublishUserLoggedIn(context.Context, domain.UserLoggedInEvent) error {
	return nil
}

func billableCase(caseID, patientID int64) *domain.CaseHistory {
	return &domain.CaseHistory{
		ID:        caseID,
		PatientID: patientID,
		Treatments: []domain.Treatment{
			{ID: 1, Name: "Cleaning", Cost: "100"},
			{ID: 2, Name: "X-Ray", Cost: "50"},
		},
	}
}

func TestPreviewComputesRoundedTotals(t *testing.T) {
	invoices := &stubInvoiceRepo{
		listPaymentsByCase: func(_ context.Context, caseID int64) ([]domain.Payment, error) {
			return []domain.Payment{{CaseID: caseID, AmountPaid: 60}, {CaseID: caseID, AmountPaid: 40}}, nil
		},
	}
	cases := &stubCaseRepo{
		getByID: func(_ context.Context, caseID int64) (*domain.CaseHistory, error) {
			return billableCase(caseID, 7), nil
		},
	}

	svc := NewBillingService(invoices, cases, &stubPublisher{}, zap.NewNop())
	preview, err := svc.Preview(context.Background(), 3, 10, 2.55)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	if preview.PatientID != 7 {
		t.Errorf("PatientID = %d, want 7", preview.PatientID)
	}
	if len(preview.LineItems) != 2 {
		t.Fatalf("LineItems = %d, want 2", len(preview.LineItems))
	}
	if preview.Totals.GrandTotal != 152.55 {
		t.Errorf("GrandTotal = %v, want 152.55", preview.Totals.GrandTotal)
	}
	if preview.Totals.CurrentBalance != 52.55 {
		t.Errorf("CurrentBalance = %v, want 52.55 (prior payments subtracted)", preview.Totals.CurrentBalance)
	}
	if preview.Totals.FinalPending != 50 {
		t.Errorf("FinalPending = %v, want 50", preview.Totals.FinalPending)
	}
}

func TestIssueInvoiceRejectsEmptyCase(t *testing.T) {
	cases := &stubCaseRepo{
		getByID: func(_ context.Context, caseID int64) (*domain.CaseHistory, error) {
			return &domain.CaseHistory{ID: caseID, PatientID: 1}, nil
		},
	}

	svc := NewBillingService(&stubInvoiceRepo{}, cases, &stubPublisher{}, zap.NewNop())
	_, err := svc.IssueInvoice(context.Background(), IssueInvoiceInput{CaseID: 9})
	if !errors.Is(err, ErrCaseHasNoTreatments) {
		t.Fatalf("err = %v, want ErrCaseHasNoTreatments", err)
	}
}

func TestIssueInvoiceRejectsOverpayment(t *testing.T) {
	invoices := &stubInvoiceRepo{
		listPaymentsByCase: func(context.Context, int64) ([]domain.Payment, error) {
			return nil, nil
		},
	}
	cases := &stubCaseRepo{
		getByID: func(_ context.Context, caseID int64) (*domain.CaseHistory, error) {
			return billableCase(caseID, 1), nil
		},
	}

	svc := NewBillingService(invoices, cases, &stubPublisher{}, zap.NewNop())
	// Grand total is 169.50 without discount; paying more must reject.
	_, err := svc.IssueInvoice(context.Background(), IssueInvoiceInput{CaseID: 9, CurrentPayment: 1000})
	if !errors.Is(err, domain.ErrPaymentExceedsBalance) {
		t.Fatalf("err = %v, want ErrPaymentExceedsBalance", err)
	}
}

func TestIssueInvoicePersistsAndPublishes(t *testing.T) {
	var (
		created   *domain.Invoice
		payment   *domain.Payment
		published *domain.InvoiceIssuedEvent
	)

	invoices := &stubInvoiceRepo{
		listPaymentsByCase: func(context.Context, int64) ([]domain.Payment, error) {
			return nil, nil
		},
		create: func(_ context.Context, invoice domain.Invoice) (int64, error) {
			created = &invoice
			return 42, nil
		},
		recordPayment: func(_ context.Context, p domain.Payment) (int64, error) {
			payment = &p
			return 1, nil
		},
	}
	cases := &stubCaseRepo{
		getByID: func(_ context.Context, caseID int64) (*domain.CaseHistory, error) {
			return billableCase(caseID, 7), nil
		},
	}
	publisher := &stubPublisher{
		invoiceIssued: func(_ context.Context, event domain.InvoiceIssuedEvent) error {
			published = &event
			return nil
		},
	}

	svc := NewBillingService(invoices, cases, publisher, zap.NewNop())
	invoice, err := svc.IssueInvoice(context.Background(), IssueInvoiceInput{
		CaseID:          3,
		DiscountPercent: 10,
		CurrentPayment:  52.55,
		PaymentMode:     "cash",
	})
	if err != nil {
		t.Fatalf("IssueInvoice: %v", err)
	}

	if invoice.ID != 42 {
		t.Errorf("invoice ID = %d, want 42", invoice.ID)
	}
	if created == nil || created.GrandTotal != 152.55 {
		t.Fatalf("persisted invoice = %+v, want grand total 152.55", created)
	}
	if created.TaxRate != domain.TaxRatePercent {
		t.Errorf("TaxRate = %v, want %v", created.TaxRate, domain.TaxRatePercent)
	}
	if created.PendingAmount != 100 {
		t.Errorf("PendingAmount = %v, want 100", created.PendingAmount)
	}
	if payment == nil || payment.AmountPaid != 52.55 || payment.InvoiceID != 42 {
		t.Errorf("recorded payment = %+v, want 52.55 against invoice 42", payment)
	}
	if published == nil || published.InvoiceID != 42 || published.PatientID != 7 {
		t.Errorf("published event = %+v, want invoice 42 for patient 7", published)
	}
}

func TestIssueInvoiceSkipsZeroPayment(t *testing.T) {
	invoices := &stubInvoiceRepo{
		listPaymentsByCase: func(context.Context, int64) ([]domain.Payment, error) {
			return nil, nil
		},
		create: func(context.Context, domain.Invoice) (int64, error) {
			return 1, nil
		},
		// recordPayment stays nil: a call would panic.
	}
	cases := &stubCaseRepo{
		getByID: func(_ context.Context, caseID int64) (*domain.CaseHistory, error) {
			return billableCase(caseID, 1), nil
		},
	}

	svc := NewBillingService(invoices, cases, &stubPublisher{}, zap.NewNop())
	if _, err := svc.IssueInvoice(context.Background(), IssueInvoiceInput{CaseID: 3}); err != nil {
		t.Fatalf("IssueInvoice: %v", err)
	}
}

func TestRecordPaymentUpdatesPending(t *testing.T) {
	var updated *domain.Invoice

	invoices := &stubInvoiceRepo{
		getByID: func(_ context.Context, invoiceID int64) (*domain.Invoice, error) {
			return &domain.Invoice{ID: invoiceID, CaseID: 3, PendingAmount: 100}, nil
		},
		recordPayment: func(context.Context, domain.Payment) (int64, error) {
			return 5, nil
		},
		update: func(_ context.Context, invoice domain.Invoice) error {
			updated = &invoice
			return nil
		},
	}

	svc := NewBillingService(invoices, &stubCaseRepo{}, &stubPublisher{}, zap.NewNop())
	invoice, err := svc.RecordPayment(context.Background(), 42, 40, "card")
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	if invoice.PendingAmount != 60 {
		t.Errorf("PendingAmount = %v, want 60", invoice.PendingAmount)
	}
	if updated == nil || updated.PendingAmount != 60 {
		t.Errorf("persisted invoice = %+v, want pending 60", updated)
	}
}

func TestRecordPaymentRejectsNegative(t *testing.T) {
	invoices := &stubInvoiceRepo{
		getByID: func(_ context.Context, invoiceID int64) (*domain.Invoice, error) {
			return &domain.Invoice{ID: invoiceID, PendingAmount: 100}, nil
		},
	}

	svc := NewBillingService(invoices, &stubCaseRepo{}, &stubPublisher{}, zap.NewNop())
	_, err := svc.RecordPayment(context.Background(), 42, -5, "cash")
	if !errors.Is(err, domain.ErrPaymentNegative) {
		t.Fatalf("err = %v, want ErrPaymentNegative", err)
	}
}
