package model

import "github.com/shopspring/decimal"

type Bill struct {
	BillID         string          `json:"bill_id"`
	Provider       string          `json:"provider"`
	ProviderType   string          `json:"provider_type,omitempty"`
	ServiceDate    string          `json:"service_date,omitempty"`
	TotalBilled    decimal.Decimal `json:"total_billed"`
	InsurancePaid  decimal.Decimal `json:"insurance_paid"`
	PatientBalance decimal.Decimal `json:"patient_balance"`
	DueDate        *string         `json:"due_date"`
	Status         string          `json:"status"`
	LineItems      []LineItem      `json:"line_items,omitempty"`
}

type LineItem struct {
	Code        string          `json:"code"`
	Description string          `json:"description,omitempty"`
	ServiceDate string          `json:"service_date,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// Settled reports whether the bill carries no patient exposure. Settled
// bills are excluded from risk and collections math.
func (b *Bill) Settled() bool {
	return b.PatientBalance.Sign() <= 0
}

// PastDue reports whether the bill's due date precedes asOf. Bills with
// no due date are never past due.
func (b *Bill) PastDue(asOf string) bool {
	d, ok := b.DaysUntilDue(asOf)
	return ok && d < 0
}

// DaysUntilDue returns the signed day count from asOf to the bill's due
// date. Negative means past due. The second return is false when either
// date is absent or unparseable.
func (b *Bill) DaysUntilDue(asOf string) (int, bool) {
	if b.DueDate == nil {
		return 0, false
	}
	due, ok := ParseDate(*b.DueDate)
	if !ok {
		return 0, false
	}
	ref, ok := ParseDate(asOf)
	if !ok {
		return 0, false
	}
	return DaysBetween(ref, due), true
}
