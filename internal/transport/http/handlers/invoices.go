package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/repository"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// InvoiceHandler exposes invoice computation, issuing and payment endpoints.
type InvoiceHandler struct {
	billing *usecase.BillingService
	logger  *zap.Logger
}

// NewInvoiceHandler builds a new invoice handler instance.
func NewInvoiceHandler(billing *usecase.BillingService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{billing: billing, logger: logger}
}

// InvoicePreviewRequest defines the live-preview payload.
type InvoicePreviewRequest struct {
	CaseID          int64   `json:"case_id" binding:"required"`
	DiscountPercent float64 `json:"discount_percent"`
	CurrentPayment  float64 `json:"current_payment"`
}

// InvoiceLineItemView is one billable treatment in API output.
type InvoiceLineItemView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Cost string `json:"cost"`
}

// InvoicePreviewView carries computed totals before persistence.
type InvoicePreviewView struct {
	CaseID    int64                 `json:"case_id"`
	PatientID int64                 `json:"patient_id"`
	LineItems []InvoiceLineItemView `json:"line_items"`
	Totals    TotalsView            `json:"totals"`
}

// IssueInvoiceRequest defines the invoice issuing payload.
type IssueInvoiceRequest struct {
	CaseID          int64   `json:"case_id" binding:"required"`
	DiscountPercent float64 `json:"discount_percent"`
	CurrentPayment  float64 `json:"current_payment"`
	PaymentMode     string  `json:"payment_mode"`
	DueDate         string  `json:"due_date"`
}

// InvoiceView is the API representation of a persisted invoice.
type InvoiceView struct {
	ID              int64     `json:"id"`
	CaseID          int64     `json:"case_id"`
	PatientID       int64     `json:"patient_id"`
	DiscountPercent float64   `json:"discount_percent"`
	SubTotal        float64   `json:"sub_total"`
	DiscountAmount  float64   `json:"discount_amount"`
	TaxRate         float64   `json:"tax_rate"`
	TaxAmount       float64   `json:"tax_amount"`
	GrandTotal      float64   `json:"grand_total"`
	PendingAmount   float64   `json:"pending_amount"`
	PaymentMode     string    `json:"payment_mode,omitempty"`
	IssueDate       time.Time `json:"issue_date"`
	DueDate         time.Time `json:"due_date"`
}

// PaymentView is the API representation of one recorded payment.
type PaymentView struct {
	ID          int64     `json:"id"`
	InvoiceID   int64     `json:"invoice_id"`
	CaseID      int64     `json:"case_id"`
	AmountPaid  float64   `json:"amount_paid"`
	PaymentMode string    `json:"payment_mode,omitempty"`
	PaidAt      time.Time `json:"paid_at"`
}

// RecordPaymentRequest defines the payment payload.
type RecordPaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	PaymentMode string  `json:"payment_mode"`
}

var invoiceErrorCases = []ErrorCase{
	{Err: usecase.ErrCaseHasNoTreatments, Status: http.StatusBadRequest, Message: "case has no billable treatments"},
	{Err: domain.ErrPaymentNegative, Status: http.StatusBadRequest, Message: "payment amount must not be negative"},
	{Err: domain.ErrPaymentExceedsBalance, Status: http.StatusBadRequest, Message: "payment amount exceeds current balance"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "not found"},
}

// Preview godoc
// @Summary Preview invoice totals
// @Description Computes totals for a case without persisting anything.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body InvoicePreviewRequest true "Preview input"
// @Success 200 {object} Envelope{data=InvoicePreviewView}
// @Failure 404 {object} ErrorResponse
// @Router /invoices/preview [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req InvoicePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid preview payload"))
		return
	}

	preview, err := h.billing.Preview(c.Request.Context(), req.CaseID, req.DiscountPercent, req.CurrentPayment)
	if err != nil {
		RespondWithMappedError(c, err, invoiceErrorCases, http.StatusInternalServerError, "invoice preview failed")
		return
	}

	c.JSON(http.StatusOK, OK(newInvoicePreviewView(*preview)))
}

// Issue godoc
// @Summary Issue an invoice
// @Description Computes totals, validates the payment and persists the invoice.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body IssueInvoiceRequest true "Invoice input"
// @Success 201 {object} Envelope{data=InvoiceView}
// @Failure 400 {object} ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Issue(c *gin.Context) {
	var req IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid invoice payload"))
		return
	}

	input := usecase.IssueInvoiceInput{
		CaseID:          req.CaseID,
		DiscountPercent: req.DiscountPercent,
		CurrentPayment:  req.CurrentPayment,
		PaymentMode:     req.PaymentMode,
	}

	if req.DueDate != "" {
		dueDate, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "due_date must be YYYY-MM-DD"))
			return
		}
		input.DueDate = dueDate
	}

	invoice, err := h.billing.IssueInvoice(c.Request.Context(), input)
	if err != nil {
		RespondWithMappedError(c, err, invoiceErrorCases, http.StatusInternalServerError, "invoice issuing failed")
		return
	}

	c.JSON(http.StatusCreated, OK(newInvoiceView(*invoice)))
}

// Get godoc
// @Summary Get an invoice
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} Envelope{data=InvoiceView}
// @Failure 404 {object} ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.billing.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		RespondWithMappedError(c, err, invoiceErrorCases, http.StatusInternalServerError, "invoice lookup failed")
		return
	}

	c.JSON(http.StatusOK, OK(newInvoiceView(*invoice)))
}

// ListByPatient godoc
// @Summary List invoices for a patient
// @Tags Invoices
// @Produce json
// @Param patientID path int true "Patient ID"
// @Success 200 {object} Envelope{data=[]InvoiceView}
// @Router /invoices/patient/{patientID} [get]
func (h *InvoiceHandler) ListByPatient(c *gin.Context) {
	patientID, ok := pathID(c, "patientID")
	if !ok {
		return
	}

	invoices, err := h.billing.ListInvoicesByPatient(c.Request.Context(), patientID)
	if err != nil {
		h.logger.Error("invoice listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "invoice listing failed"))
		return
	}

	views := make([]InvoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		views = append(views, newInvoiceView(invoice))
	}

	c.JSON(http.StatusOK, OK(views))
}

// PastPayments godoc
// @Summary List past payments for a case
// @Description Returns every payment already recorded against the case; their sum is the prior-paid amount in totals.
// @Tags Invoices
// @Produce json
// @Param caseID path int true "Case ID"
// @Success 200 {object} Envelope{data=[]PaymentView}
// @Router /invoices/past-payments/{caseID} [get]
func (h *InvoiceHandler) PastPayments(c *gin.Context) {
	caseID, ok := pathID(c, "caseID")
	if !ok {
		return
	}

	payments, err := h.billing.PastPaymentsByCase(c.Request.Context(), caseID)
	if err != nil {
		h.logger.Error("payment listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "payment listing failed"))
		return
	}

	views := make([]PaymentView, 0, len(payments))
	for _, payment := range payments {
		views = append(views, PaymentView{
			ID:          payment.ID,
			InvoiceID:   payment.InvoiceID,
			CaseID:      payment.CaseID,
			AmountPaid:  payment.AmountPaid,
			PaymentMode: payment.PaymentMode,
			PaidAt:      payment.PaidAt,
		})
	}

	c.JSON(http.StatusOK, OK(views))
}

// RecordPayment godoc
// @Summary Record a payment against an invoice
// @Description Validates the amount against the outstanding balance; violations reject, never clamp.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param request body RecordPaymentRequest true "Payment"
// @Success 200 {object} Envelope{data=InvoiceView}
// @Failure 400 {object} ErrorResponse
// @Router /invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	invoiceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid payment payload"))
		return
	}

	invoice, err := h.billing.RecordPayment(c.Request.Context(), invoiceID, req.Amount, req.PaymentMode)
	if err != nil {
		RespondWithMappedError(c, err, invoiceErrorCases, http.StatusInternalServerError, "payment recording failed")
		return
	}

	c.JSON(http.StatusOK, OK(newInvoiceView(*invoice)))
}

func newInvoicePreviewView(preview usecase.InvoicePreview) InvoicePreviewView {
	items := make([]InvoiceLineItemView, 0, len(preview.LineItems))
	for _, item := range preview.LineItems {
		items = append(items, InvoiceLineItemView{ID: item.ID, Name: item.Name, Cost: item.Cost})
	}
	return InvoicePreviewView{
		CaseID:    preview.CaseID,
		PatientID: preview.PatientID,
		LineItems: items,
		Totals:    NewTotalsView(preview.Totals),
	}
}

func newInvoiceView(invoice domain.Invoice) InvoiceView {
	return InvoiceView{
		ID:              invoice.ID,
		CaseID:          invoice.CaseID,
		PatientID:       invoice.PatientID,
		DiscountPercent: invoice.DiscountPercent,
		SubTotal:        invoice.SubTotal,
		DiscountAmount:  invoice.DiscountAmount,
		TaxRate:         invoice.TaxRate,
		TaxAmount:       invoice.TaxAmount,
		GrandTotal:      invoice.GrandTotal,
		PendingAmount:   invoice.PendingAmount,
		PaymentMode:     invoice.PaymentMode,
		IssueDate:       invoice.IssueDate,
		DueDate:         invoice.DueDate,
	}
}
