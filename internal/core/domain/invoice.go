package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// TaxRatePercent is the fixed tax rate applied to every invoice.
const TaxRatePercent = 13.0

var (
	// ErrPaymentNegative indicates the operator entered a payment below zero.
	ErrPaymentNegative = errors.New("invoice: payment amount must not be negative")
	// ErrPaymentExceedsBalance indicates the payment is larger than the outstanding balance.
	ErrPaymentExceedsBalance = errors.New("invoice: payment amount exceeds current balance")
)

// InvoiceLineItem is one billable treatment contributing to the subtotal.
// Cost is kept as the raw string received from the case history payload; a
// value that does not parse as a number contributes zero rather than failing
// the whole computation.
type InvoiceLineItem struct {
	ID   int64
	Name string
	Cost string
}

// TotalsInput collects every mutable input the totals derive from.
type TotalsInput struct {
	LineItems       []InvoiceLineItem
	DiscountPercent float64
	PriorPaid       float64
	CurrentPayment  float64
}

// Totals holds the derived invoice amounts. Values are unrounded; call
// Rounded before presenting or persisting them.
type Totals struct {
	SubTotal       float64
	DiscountAmount float64
	TaxAmount      float64
	GrandTotal     float64
	CurrentBalance float64
	FinalPending   float64
}

// ComputeInvoiceTotals derives all invoice amounts from the provided inputs.
// It is pure and never fails: malformed costs count as zero. Rounding is
// deferred to Rounded so intermediate steps do not compound rounding error.
func ComputeInvoiceTotals(in TotalsInput) Totals {
	var subTotal float64
	for _, item := range in.LineItems {
		subTotal += parseCost(item.Cost)
	}

	var discountAmount float64
	if in.DiscountPercent > 0 {
		discountAmount = subTotal * in.DiscountPercent / 100
	}

	afterDiscount := subTotal - discountAmount
	taxAmount := afterDiscount * TaxRatePercent / 100
	grandTotal := afterDiscount + taxAmount

	return Totals{
		SubTotal:       subTotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		GrandTotal:     grandTotal,
		CurrentBalance: grandTotal - in.PriorPaid,
		FinalPending:   grandTotal - in.PriorPaid - in.CurrentPayment,
	}
}

// Rounded returns a copy with every amount rounded to two decimal places.
func (t Totals) Rounded() Totals {
	return Totals{
		SubTotal:       RoundMoney(t.SubTotal),
		DiscountAmount: RoundMoney(t.DiscountAmount),
		TaxAmount:      RoundMoney(t.TaxAmount),
		GrandTotal:     RoundMoney(t.GrandTotal),
		CurrentBalance: RoundMoney(t.CurrentBalance),
		FinalPending:   RoundMoney(t.FinalPending),
	}
}

// RoundMoney rounds a monetary amount to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidatePaymentAmount enforces 0 <= amount <= currentBalance. Violations are
// rejected, never clamped.
func ValidatePaymentAmount(amount, currentBalance float64) error {
	if amount < 0 {
		return ErrPaymentNegative
	}
	if amount > currentBalance {
		return ErrPaymentExceedsBalance
	}
	return nil
}

func parseCost(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	cost, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0
	}
	return cost
}

// Invoice mirrors the persisted representation in the invoices table.
type Invoice struct {
	ID              int64
	CaseID          int64
	PatientID       int64
	DiscountPercent float64
	SubTotal        float64
	DiscountAmount  float64
	TaxRate         float64
	TaxAmount       float64
	GrandTotal      float64
	PendingAmount   float64
	PaymentMode     string
	IssueDate       time.Time
	DueDate         time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Payment records a single amount paid against a case.
type Payment struct {
	ID              int64
	InvoiceID       int64
	CaseID          int64
	AmountPaid      float64
	DiscountPercent float64
	PaymentMode     string
	PaidAt          time.Time
}
