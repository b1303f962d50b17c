package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecommendationContext is the engine's single input: a snapshot of a
// household's financial situation. Every analysis derives purely from
// it; the engine never reads state from anywhere else.
type RecommendationContext struct {
	UserID                 string           `json:"user_id"`
	AsOf                   string           `json:"as_of,omitempty"`
	FPLPercentage          *float64         `json:"fpl_percentage"`
	State                  string           `json:"state,omitempty"`
	Income                 *IncomeSummary   `json:"income"`
	Debt                   *DebtSummary     `json:"debt"`
	Insurance              *InsurancePlan   `json:"insurance"`
	Bills                  []Bill           `json:"bills,omitempty"`
	UpcomingProcedures     []Procedure      `json:"upcoming_procedures,omitempty"`
	HSABalance             decimal.Decimal  `json:"hsa_balance"`
	FSABalance             decimal.Decimal  `json:"fsa_balance"`
	MonthlyPaymentCapacity *decimal.Decimal `json:"monthly_payment_capacity"`
}

// Normalize resolves the context into its canonical shape before any
// scorer runs: it defaults as_of, clamps insurance met amounts to their
// totals, and floors negative money fields. Scorers can then rely on
// the invariants instead of re-checking them.
func (c *RecommendationContext) Normalize(now time.Time) {
	if _, ok := ParseDate(c.AsOf); !ok {
		c.AsOf = FormatDate(now.UTC())
	}
	if c.Insurance != nil {
		ins := c.Insurance
		if ins.DeductibleMet.GreaterThan(ins.DeductibleTotal) {
			ins.DeductibleMet = ins.DeductibleTotal
		}
		if ins.OOPMet.GreaterThan(ins.OOPMax) {
			ins.OOPMet = ins.OOPMax
		}
	}
	if c.HSABalance.Sign() < 0 {
		c.HSABalance = decimal.Zero
	}
	if c.FSABalance.Sign() < 0 {
		c.FSABalance = decimal.Zero
	}
	for i := range c.Bills {
		if c.Bills[i].Status == "" {
			c.Bills[i].Status = BillPending
		}
	}
}

// AsOfDate returns the parsed as_of date. Call Normalize first.
func (c *RecommendationContext) AsOfDate() time.Time {
	t, _ := ParseDate(c.AsOf)
	return t
}

// FPL returns the federal-poverty-line percentage and whether it was
// supplied.
func (c *RecommendationContext) FPL() (float64, bool) {
	if c.FPLPercentage == nil {
		return 0, false
	}
	return *c.FPLPercentage, true
}

// OpenBills returns the bills with patient exposure. Settled bills
// carry no risk and generate no recommendations.
func (c *RecommendationContext) OpenBills() []Bill {
	open := make([]Bill, 0, len(c.Bills))
	for _, b := range c.Bills {
		if !b.Settled() {
			open = append(open, b)
		}
	}
	return open
}

// TotalOwed sums patient balances across open bills.
func (c *RecommendationContext) TotalOwed() decimal.Decimal {
	total := decimal.Zero
	for _, b := range c.OpenBills() {
		total = total.Add(b.PatientBalance)
	}
	return total
}

// AnnualIncome is monthly gross x 12, zero when no income data exists.
func (c *RecommendationContext) AnnualIncome() decimal.Decimal {
	if c.Income == nil {
		return decimal.Zero
	}
	return c.Income.MonthlyGross.Mul(decimal.NewFromInt(12))
}

// PaymentCapacity returns the monthly amount available for medical
// payments: the explicit value when supplied, else 10% of monthly net
// income, else zero.
func (c *RecommendationContext) PaymentCapacity() decimal.Decimal {
	if c.MonthlyPaymentCapacity != nil && c.MonthlyPaymentCapacity.Sign() > 0 {
		return *c.MonthlyPaymentCapacity
	}
	if c.Income != nil && c.Income.MonthlyNet.Sign() > 0 {
		return c.Income.MonthlyNet.Mul(decimal.NewFromFloat(0.10))
	}
	return decimal.Zero
}

// Uninsured reports whether the context carries no insurance plan.
func (c *RecommendationContext) Uninsured() bool {
	return c.Insurance == nil
}
