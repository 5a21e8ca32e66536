package domain

import "time"

// CaseHistory groups one course of care for a patient, linking the medical
// conditions diagnosed, the treatments performed and the medicines prescribed.
type CaseHistory struct {
	ID         int64
	PatientID  int64
	StaffID    int64
	Notes      *string
	CaseDate   time.Time
	Conditions []MedicalCondition
	Treatments []Treatment
	Medicines  []Medicine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TreatmentLineItems converts the linked treatments into invoice line items.
// Costs are carried as their raw string form so invoice computation can
// degrade gracefully on malformed values.
func (c CaseHistory) TreatmentLineItems() []InvoiceLineItem {
	if len(c.Treatments) == 0 {
		return nil
	}
	items := make([]InvoiceLineItem, 0, len(c.Treatments))
	for _, t := range c.Treatments {
		items = append(items, InvoiceLineItem{ID: t.ID, Name: t.Name, Cost: t.Cost})
	}
	return items
}
