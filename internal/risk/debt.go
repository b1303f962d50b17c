package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"medfin-engine/internal/model"
)

// scoreDebtBurden scores the debt-to-income ratio against the standard
// lending bands (0.36 / 0.43 / 0.50).
func (e *Engine) scoreDebtBurden(ctx *model.RecommendationContext) dimensionResult {
	if ctx.Debt == nil {
		return dimensionResult{
			score:    defaultScore,
			warnings: []string{"no debt data; debt burden defaulted to moderate"},
		}
	}
	dti := ctx.Debt.DTIRatio
	raw := fmt.Sprintf("dti=%.2f", dti)
	switch {
	case dti >= 0.50:
		return dimensionResult{score: 100, factors: []model.RiskFactor{{
			FactorID:    "DEBT_DTI_CRITICAL",
			Description: "Debt payments consume half or more of gross income",
			RawValue:    raw,
			Score:       100,
			IsCritical:  true,
		}}}
	case dti >= 0.43:
		return dimensionResult{score: 80, factors: []model.RiskFactor{{
			FactorID:    "DEBT_DTI_HIGH",
			Description: "Debt-to-income ratio exceeds the 43% qualified-mortgage limit",
			RawValue:    raw,
			Score:       80,
		}}}
	case dti >= 0.36:
		return dimensionResult{score: 60, factors: []model.RiskFactor{{
			FactorID:    "DEBT_DTI_ELEVATED",
			Description: "Debt-to-income ratio is above the recommended 36%",
			RawValue:    raw,
			Score:       60,
		}}}
	default:
		return dimensionResult{score: clamp(dti*150, 0, 60)}
	}
}

// scoreMedicalDebtRatio scores medical debt against annual income. Open
// bill balances count toward medical debt so a growing bill always moves
// this dimension the same direction.
func (e *Engine) scoreMedicalDebtRatio(ctx *model.RecommendationContext) dimensionResult {
	medical := ctx.TotalOwed()
	if ctx.Debt != nil && ctx.Debt.MedicalDebt.GreaterThan(medical) {
		medical = ctx.Debt.MedicalDebt
	}
	if ctx.Debt == nil && len(ctx.Bills) == 0 {
		return dimensionResult{
			score:    defaultScore,
			warnings: []string{"no debt or bill data; medical debt ratio defaulted to moderate"},
		}
	}
	if medical.Sign() <= 0 {
		return dimensionResult{score: 0}
	}

	annual := ctx.AnnualIncome()
	if annual.Sign() <= 0 {
		return dimensionResult{
			score:    defaultScore,
			warnings: []string{"medical debt present but income unknown; ratio defaulted to moderate"},
		}
	}

	ratio, _ := medical.Div(annual).Float64()
	raw := fmt.Sprintf("medical_debt_ratio=%.2f", ratio)
	switch {
	case ratio > 0.50:
		return dimensionResult{score: 100, factors: []model.RiskFactor{{
			FactorID:    "MED_RATIO_CRITICAL",
			Description: "Medical debt exceeds half of annual income",
			RawValue:    raw,
			Score:       100,
			IsCritical:  true,
		}}}
	case ratio > 0.25:
		return dimensionResult{score: 75, factors: []model.RiskFactor{{
			FactorID:    "MED_RATIO_HIGH",
			Description: "Medical debt exceeds a quarter of annual income",
			RawValue:    raw,
			Score:       75,
		}}}
	case ratio > 0.10:
		return dimensionResult{score: 50, factors: []model.RiskFactor{{
			FactorID:    "MED_RATIO_ELEVATED",
			Description: "Medical debt exceeds 10% of annual income",
			RawValue:    raw,
			Score:       50,
		}}}
	default:
		return dimensionResult{score: clamp(ratio*500, 0, 50)}
	}
}

// scorePaymentHistory blends on-time payment rate, delinquent accounts,
// and past-due bills (weights 0.4 / 0.3 / 0.3 within the dimension).
func (e *Engine) scorePaymentHistory(ctx *model.RecommendationContext) dimensionResult {
	if ctx.Debt == nil && len(ctx.Bills) == 0 {
		return dimensionResult{
			score:    defaultScore,
			warnings: []string{"no payment history data; defaulted to moderate"},
		}
	}

	var factors []model.RiskFactor

	onTime := 0.0
	if ctx.Debt != nil && ctx.Debt.OnTimePaymentRate != nil {
		rate := clamp(*ctx.Debt.OnTimePaymentRate, 0, 1)
		onTime = (1 - rate) * 100
		if rate < 0.80 {
			factors = append(factors, model.RiskFactor{
				FactorID:    "PAY_LATE_PATTERN",
				Description: "Fewer than 80% of payments made on time",
				RawValue:    fmt.Sprintf("on_time_rate=%.2f", rate),
				Score:       onTime,
			})
		}
	}

	delinquent := 0.0
	if ctx.Debt != nil {
		switch n := ctx.Debt.DelinquentAccounts; {
		case n >= 3:
			delinquent = 80
		case n == 2:
			delinquent = 60
		case n == 1:
			delinquent = 40
		}
		if ctx.Debt.DelinquentAccounts > 0 {
			factors = append(factors, model.RiskFactor{
				FactorID:    "PAY_DELINQUENT",
				Description: fmt.Sprintf("%d delinquent account(s) on record", ctx.Debt.DelinquentAccounts),
				RawValue:    fmt.Sprintf("delinquent=%d", ctx.Debt.DelinquentAccounts),
				Score:       delinquent,
			})
		}
	}

	pastDueCount := 0
	for _, b := range ctx.OpenBills() {
		if b.PastDue(ctx.AsOf) {
			pastDueCount++
		}
	}
	pastDue := 0.0
	switch {
	case pastDueCount >= 2:
		pastDue = 70
	case pastDueCount == 1:
		pastDue = 40
	}
	if pastDueCount > 0 {
		factors = append(factors, model.RiskFactor{
			FactorID:    "PAY_PASTDUE_BILLS",
			Description: fmt.Sprintf("%d medical bill(s) currently past due", pastDueCount),
			RawValue:    fmt.Sprintf("past_due=%d", pastDueCount),
			Score:       pastDue,
		})
	}

	return dimensionResult{
		score:   onTime*0.4 + delinquent*0.3 + pastDue*0.3,
		factors: factors,
	}
}

// scoreCollectionsExposure scores the amount in active collections plus
// a contribution from past-due bills headed there.
func (e *Engine) scoreCollectionsExposure(ctx *model.RecommendationContext) dimensionResult {
	if ctx.Debt == nil && len(ctx.Bills) == 0 {
		return dimensionResult{
			score:    defaultScore,
			warnings: []string{"no collections data; defaulted to moderate"},
		}
	}

	inCollections := decimal.Zero
	if ctx.Debt != nil {
		inCollections = ctx.Debt.InCollections
	}
	for _, b := range ctx.OpenBills() {
		if b.Status == model.BillCollections {
			inCollections = inCollections.Add(b.PatientBalance)
		}
	}

	var (
		score   float64
		factors []model.RiskFactor
	)
	raw := fmt.Sprintf("in_collections=$%s", inCollections.StringFixed(2))
	switch {
	case inCollections.GreaterThanOrEqual(decimal.NewFromInt(5000)):
		score = 100
		factors = append(factors, model.RiskFactor{
			FactorID:    "COLL_CRITICAL",
			Description: "More than $5,000 is in active collections",
			RawValue:    raw,
			Score:       100,
			IsCritical:  true,
		})
	case inCollections.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		score = 70
		factors = append(factors, model.RiskFactor{
			FactorID:    "COLL_HIGH",
			Description: "More than $1,000 is in active collections",
			RawValue:    raw,
			Score:       70,
		})
	case inCollections.Sign() > 0:
		score = 40
		factors = append(factors, model.RiskFactor{
			FactorID:    "COLL_PRESENT",
			Description: "Debt is in active collections",
			RawValue:    raw,
			Score:       40,
		})
	}

	pastDue := 0
	for _, b := range ctx.OpenBills() {
		if b.PastDue(ctx.AsOf) && b.Status != model.BillCollections {
			pastDue++
		}
	}
	if pastDue > 0 {
		score = clamp(score+20, 0, 100)
		factors = append(factors, model.RiskFactor{
			FactorID:    "COLL_PASTDUE_RISK",
			Description: fmt.Sprintf("%d past-due bill(s) at risk of being sent to collections", pastDue),
			RawValue:    fmt.Sprintf("past_due=%d", pastDue),
			Score:       20,
		})
	}

	return dimensionResult{score: score, factors: factors}
}
