package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"medfin-engine/internal/billcheck"
	"medfin-engine/internal/model"
)

// scoreBillErrors scores detected billing errors across open bills.
// Finding types contribute unequal sub-scores: duplicates 40, unbundling
// 30, preventive miscoding 20, capped at 100.
func (e *Engine) scoreBillErrors(ctx *model.RecommendationContext) dimensionResult {
	findings := e.checker.Analyze(ctx.OpenBills())
	if len(findings) == 0 {
		return dimensionResult{score: 0}
	}

	counts := map[string]int{}
	recoverable := decimal.Zero
	for _, f := range findings {
		counts[f.FindingType]++
		recoverable = recoverable.Add(f.Amount)
	}

	score := 0.0
	var factors []model.RiskFactor
	addType := func(findingType string, points float64, id, desc string) {
		n := counts[findingType]
		if n == 0 {
			return
		}
		score += points * float64(n)
		factors = append(factors, model.RiskFactor{
			FactorID:    id,
			Description: fmt.Sprintf("%s (%d found)", desc, n),
			RawValue:    fmt.Sprintf("count=%d", n),
			Score:       clamp(points*float64(n), 0, 100),
		})
	}
	addType(billcheck.FindingDuplicate, 40, "BILL_DUPLICATES", "Duplicate charges detected on itemized bills")
	addType(billcheck.FindingUnbundling, 30, "BILL_UNBUNDLING", "Unbundled procedure codes detected")
	addType(billcheck.FindingPreventive, 20, "BILL_PREVENTIVE_MISCODED", "Preventive services billed with patient cost share")

	factors = append(factors, model.RiskFactor{
		FactorID:    "BILL_RECOVERABLE",
		Description: fmt.Sprintf("Approximately $%s in charges appears disputable", recoverable.StringFixed(2)),
		RawValue:    fmt.Sprintf("recoverable=$%s", recoverable.StringFixed(2)),
		Score:       clamp(score, 0, 100),
	})

	return dimensionResult{score: clamp(score, 0, 100), factors: factors}
}

// scoreAffordability projects months to pay off everything owed at the
// current payment capacity.
func (e *Engine) scoreAffordability(ctx *model.RecommendationContext) dimensionResult {
	owed := ctx.TotalOwed()
	if owed.Sign() <= 0 {
		return dimensionResult{score: 0}
	}

	capacity := ctx.PaymentCapacity()
	if capacity.Sign() <= 0 {
		return dimensionResult{score: 100, factors: []model.RiskFactor{{
			FactorID:    "AFFORD_CRITICAL",
			Description: "Outstanding balances with no payment capacity; payoff is not feasible at current income",
			RawValue:    fmt.Sprintf("owed=$%s", owed.StringFixed(2)),
			Score:       100,
			IsCritical:  true,
		}}}
	}

	months, _ := owed.Div(capacity).Float64()
	raw := fmt.Sprintf("owed=$%s months_to_payoff=%.1f", owed.StringFixed(2), months)
	switch {
	case months > 36:
		return dimensionResult{score: 100, factors: []model.RiskFactor{{
			FactorID:    "AFFORD_CRITICAL",
			Description: "Paying off current balances would take more than three years",
			RawValue:    raw,
			Score:       100,
			IsCritical:  true,
		}}}
	case months > 24:
		return dimensionResult{score: 75, factors: []model.RiskFactor{{
			FactorID:    "AFFORD_LONG",
			Description: "Paying off current balances would take more than two years",
			RawValue:    raw,
			Score:       75,
		}}}
	case months > 12:
		return dimensionResult{score: 50, factors: []model.RiskFactor{{
			FactorID:    "AFFORD_EXTENDED",
			Description: "Paying off current balances would take more than a year",
			RawValue:    raw,
			Score:       50,
		}}}
	default:
		return dimensionResult{score: clamp(months/12*50, 0, 50)}
	}
}
