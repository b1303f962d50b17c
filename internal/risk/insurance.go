package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"medfin-engine/internal/model"
)

// scoreInsuranceGaps scores coverage holes. Being uninsured is the
// maximum score and always critical.
func (e *Engine) scoreInsuranceGaps(ctx *model.RecommendationContext) dimensionResult {
	if ctx.Uninsured() {
		return dimensionResult{score: 100, factors: []model.RiskFactor{{
			FactorID:    "INS_NONE",
			Description: "No health insurance coverage on file",
			RawValue:    "uninsured",
			Score:       100,
			IsCritical:  true,
		}}}
	}

	var (
		unresolved int
		exposure   = decimal.Zero
	)
	for _, g := range ctx.Insurance.CoverageGaps {
		if g.Resolved {
			continue
		}
		unresolved++
		exposure = exposure.Add(g.EstimatedExposure)
	}
	if unresolved == 0 {
		return dimensionResult{score: 0}
	}

	score := clamp(float64(unresolved)*25, 0, 75)
	if exposure.GreaterThan(decimal.NewFromInt(1000)) {
		score = clamp(score+25, 0, 100)
	}
	return dimensionResult{score: score, factors: []model.RiskFactor{{
		FactorID:    "INS_GAPS_UNRESOLVED",
		Description: fmt.Sprintf("%d unresolved coverage gap(s) with $%s estimated exposure", unresolved, exposure.StringFixed(2)),
		RawValue:    fmt.Sprintf("gaps=%d exposure=$%s", unresolved, exposure.StringFixed(2)),
		Score:       score,
	}}}
}

// scoreCoverageAdequacy scores how much of the cost of care the plan
// actually shifts to the patient (coinsurance and remaining deductible
// each weighted 0.5 within the dimension).
func (e *Engine) scoreCoverageAdequacy(ctx *model.RecommendationContext) dimensionResult {
	if ctx.Uninsured() {
		return dimensionResult{score: 70, factors: []model.RiskFactor{{
			FactorID:    "COV_NONE",
			Description: "Without insurance the full cost of care falls on the patient",
			RawValue:    "uninsured",
			Score:       70,
		}}}
	}
	ins := ctx.Insurance
	var factors []model.RiskFactor

	coins := 0.0
	switch rate := ins.CoinsuranceRate; {
	case rate >= 0.40:
		coins = 80
	case rate >= 0.30:
		coins = 60
	case rate >= 0.20:
		coins = 40
	default:
		coins = rate * 100
	}
	if ins.CoinsuranceRate >= 0.30 {
		factors = append(factors, model.RiskFactor{
			FactorID:    "COV_COINSURANCE_HIGH",
			Description: fmt.Sprintf("Coinsurance leaves the patient with %.0f%% of costs after the deductible", ins.CoinsuranceRate*100),
			RawValue:    fmt.Sprintf("coinsurance=%.2f", ins.CoinsuranceRate),
			Score:       coins,
		})
	}

	ded := 0.0
	remaining := ins.DeductibleTotal.Sub(ins.DeductibleMet)
	if remaining.Sign() > 0 && ctx.Income != nil && ctx.Income.MonthlyGross.Sign() > 0 {
		monthly := ctx.Income.MonthlyGross
		switch {
		case remaining.GreaterThan(monthly.Mul(decimal.NewFromInt(2))):
			ded = 70
		case remaining.GreaterThan(monthly):
			ded = 50
		case remaining.GreaterThan(monthly.Div(decimal.NewFromInt(2))):
			ded = 30
		}
		if remaining.GreaterThan(monthly) {
			factors = append(factors, model.RiskFactor{
				FactorID:    "COV_DEDUCTIBLE_HIGH",
				Description: fmt.Sprintf("Remaining deductible of $%s exceeds a month of gross income", remaining.StringFixed(2)),
				RawValue:    fmt.Sprintf("deductible_remaining=$%s", remaining.StringFixed(2)),
				Score:       ded,
			})
		}
	}

	return dimensionResult{score: coins*0.5 + ded*0.5, factors: factors}
}

// scoreUpcomingCosts sizes scheduled procedures against monthly payment
// capacity.
func (e *Engine) scoreUpcomingCosts(ctx *model.RecommendationContext) dimensionResult {
	upcoming := decimal.Zero
	for i := range ctx.UpcomingProcedures {
		upcoming = upcoming.Add(ctx.UpcomingProcedures[i].PatientCost())
	}
	if upcoming.Sign() <= 0 {
		return dimensionResult{score: 0}
	}

	capacity := ctx.PaymentCapacity()
	if capacity.Sign() <= 0 {
		return dimensionResult{score: 80, factors: []model.RiskFactor{{
			FactorID:    "UPCOMING_NO_CAPACITY",
			Description: fmt.Sprintf("$%s of upcoming procedure costs with no payment capacity on record", upcoming.StringFixed(2)),
			RawValue:    fmt.Sprintf("upcoming=$%s", upcoming.StringFixed(2)),
			Score:       80,
		}}}
	}

	months, _ := upcoming.Div(capacity).Float64()
	raw := fmt.Sprintf("upcoming=$%s months=%.1f", upcoming.StringFixed(2), months)
	switch {
	case months > 6:
		return dimensionResult{score: 90, factors: []model.RiskFactor{{
			FactorID:    "UPCOMING_SEVERE",
			Description: "Upcoming procedure costs exceed six months of payment capacity",
			RawValue:    raw,
			Score:       90,
		}}}
	case months > 3:
		return dimensionResult{score: 70, factors: []model.RiskFactor{{
			FactorID:    "UPCOMING_HIGH",
			Description: "Upcoming procedure costs exceed three months of payment capacity",
			RawValue:    raw,
			Score:       70,
		}}}
	case months > 1:
		return dimensionResult{score: 50, factors: []model.RiskFactor{{
			FactorID:    "UPCOMING_MODERATE",
			Description: "Upcoming procedure costs exceed one month of payment capacity",
			RawValue:    raw,
			Score:       50,
		}}}
	default:
		return dimensionResult{score: clamp(months*50, 0, 50)}
	}
}
