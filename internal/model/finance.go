package model

import "github.com/shopspring/decimal"

type IncomeSummary struct {
	MonthlyGross   decimal.Decimal `json:"monthly_gross"`
	MonthlyNet     decimal.Decimal `json:"monthly_net"`
	Sources        []IncomeSource  `json:"sources,omitempty"`
	StabilityScore *float64        `json:"stability_score"`
}

type IncomeSource struct {
	SourceType    string          `json:"source_type"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	Stable        bool            `json:"stable"`
}

type DebtSummary struct {
	TotalDebt          decimal.Decimal `json:"total_debt"`
	MedicalDebt        decimal.Decimal `json:"medical_debt"`
	InCollections      decimal.Decimal `json:"in_collections"`
	DelinquentAccounts int             `json:"delinquent_accounts"`
	DTIRatio           float64         `json:"dti_ratio"`
	MonthlyDebtService decimal.Decimal `json:"monthly_debt_service"`
	OnTimePaymentRate  *float64        `json:"on_time_payment_rate"`
	HighInterestDebt   decimal.Decimal `json:"high_interest_debt"`
}

type InsurancePlan struct {
	PlanName        string          `json:"plan_name,omitempty"`
	DeductibleTotal decimal.Decimal `json:"deductible_total"`
	DeductibleMet   decimal.Decimal `json:"deductible_met"`
	OOPMax          decimal.Decimal `json:"oop_max"`
	OOPMet          decimal.Decimal `json:"oop_met"`
	CoinsuranceRate float64         `json:"coinsurance_rate"`
	PlanYearEnd     *string         `json:"plan_year_end"`
	CoverageGaps    []CoverageGap   `json:"coverage_gaps,omitempty"`
}

// OOPRemaining is max(0, oop_max - oop_met). Assumes the plan has been
// normalized so met never exceeds total.
func (p *InsurancePlan) OOPRemaining() decimal.Decimal {
	rem := p.OOPMax.Sub(p.OOPMet)
	if rem.Sign() < 0 {
		return decimal.Zero
	}
	return rem
}

// DeductiblePctMet returns the met fraction in [0,1], or 0 when the plan
// has no deductible.
func (p *InsurancePlan) DeductiblePctMet() float64 {
	if p.DeductibleTotal.Sign() <= 0 {
		return 0
	}
	f, _ := p.DeductibleMet.Div(p.DeductibleTotal).Float64()
	return f
}

// OOPPctMet returns the met fraction of the out-of-pocket max in [0,1].
func (p *InsurancePlan) OOPPctMet() float64 {
	if p.OOPMax.Sign() <= 0 {
		return 0
	}
	f, _ := p.OOPMet.Div(p.OOPMax).Float64()
	return f
}

type CoverageGap struct {
	GapType           string          `json:"gap_type"`
	Description       string          `json:"description,omitempty"`
	EstimatedExposure decimal.Decimal `json:"estimated_exposure"`
	Resolved          bool            `json:"resolved"`
}

type Procedure struct {
	Name                  string           `json:"name"`
	EstimatedCost         decimal.Decimal  `json:"estimated_cost"`
	PatientResponsibility *decimal.Decimal `json:"patient_responsibility"`
	ScheduledDate         *string          `json:"scheduled_date"`
}

// PatientCost returns the explicit patient responsibility, or 30% of the
// estimated cost when none was supplied.
func (p *Procedure) PatientCost() decimal.Decimal {
	if p.PatientResponsibility != nil {
		return *p.PatientResponsibility
	}
	return p.EstimatedCost.Mul(decimal.NewFromFloat(0.30))
}
