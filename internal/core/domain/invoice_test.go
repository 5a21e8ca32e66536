package domain

import (
	"errors"
	"testing"
)

func TestComputeInvoiceTotals(t *testing.T) {
	totals := ComputeInvoiceTotals(TotalsInput{
		LineItems: []InvoiceLineItem{
			{ID: 1, Name: "Cleaning", Cost: "100"},
			{ID: 2, Name: "X-Ray", Cost: "50"},
		},
		DiscountPercent: 10,
		PriorPaid:       100,
		CurrentPayment:  2.55,
	}).Rounded()

	if totals.SubTotal != 150 {
		t.Errorf("SubTotal = %v, want 150", totals.SubTotal)
	}
	if totals.DiscountAmount != 15 {
		t.Errorf("DiscountAmount = %v, want 15", totals.DiscountAmount)
	}
	if totals.TaxAmount != 17.55 {
		t.Errorf("TaxAmount = %v, want 17.55", totals.TaxAmount)
	}
	if totals.GrandTotal != 152.55 {
		t.Errorf("GrandTotal = %v, want 152.55", totals.GrandTotal)
	}
	if totals.CurrentBalance != 52.55 {
		t.Errorf("CurrentBalance = %v, want 52.55", totals.CurrentBalance)
	}
	if totals.FinalPending != 50 {
		t.Errorf("FinalPending = %v, want 50", totals.FinalPending)
	}
}

func TestComputeInvoiceTotalsMalformedCost(t *testing.T) {
	totals := ComputeInvoiceTotals(TotalsInput{
		LineItems: []InvoiceLineItem{
			{ID: 1, Name: "Consultation", Cost: "abc"},
			{ID: 2, Name: "Cleaning", Cost: "80"},
			{ID: 3, Name: "Blank", Cost: ""},
		},
	}).Rounded()

	if totals.SubTotal != 80 {
		t.Errorf("SubTotal = %v, want 80 (malformed costs bill as zero)", totals.SubTotal)
	}
	if totals.TaxAmount != 10.4 {
		t.Errorf("TaxAmount = %v, want 10.4", totals.TaxAmount)
	}
}

func TestComputeInvoiceTotalsZeroDiscount(t *testing.T) {
	totals := ComputeInvoiceTotals(TotalsInput{
		LineItems: []InvoiceLineItem{{ID: 1, Name: "Filling", Cost: "200"}},
	}).Rounded()

	if totals.DiscountAmount != 0 {
		t.Errorf("DiscountAmount = %v, want 0", totals.DiscountAmount)
	}
	if totals.GrandTotal != 226 {
		t.Errorf("GrandTotal = %v, want 226", totals.GrandTotal)
	}
}

func TestRoundedTwoDecimals(t *testing.T) {
	totals := Totals{SubTotal: 10.005, TaxAmount: 1.2349, GrandTotal: 11.239}.Rounded()

	if totals.SubTotal != 10.01 {
		t.Errorf("SubTotal = %v, want 10.01", totals.SubTotal)
	}
	if totals.TaxAmount != 1.23 {
		t.Errorf("TaxAmount = %v, want 1.23", totals.TaxAmount)
	}
	if totals.GrandTotal != 11.24 {
		t.Errorf("GrandTotal = %v, want 11.24", totals.GrandTotal)
	}
}

func TestValidatePaymentAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		balance float64
		wantErr error
	}{
		{"zero payment", 0, 100, nil},
		{"exact balance", 100, 100, nil},
		{"partial payment", 40, 100, nil},
		{"negative payment", -1, 100, ErrPaymentNegative},
		{"overpayment", 100.01, 100, ErrPaymentExceedsBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentAmount(tt.amount, tt.balance)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePaymentAmount(%v, %v) = %v, want %v", tt.amount, tt.balance, err, tt.wantErr)
			}
		})
	}
}

func TestFeaturePermissionsAllows(t *testing.T) {
	var unloaded FeaturePermissions
	if unloaded.Allows(FeatureDashboard) {
		t.Error("nil permissions must deny every feature")
	}

	perms := FeaturePermissions{FeatureDashboard: true, FeatureInvoices: false}
	if !perms.Allows(FeatureDashboard) {
		t.Error("granted feature must be allowed")
	}
	if perms.Allows(FeatureInvoices) {
		t.Error("feature mapped to false must be denied")
	}
	if perms.Allows(FeatureStaff) {
		t.Error("unlisted feature must be denied")
	}
}
