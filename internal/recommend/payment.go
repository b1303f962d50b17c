package recommend

import (
	"fmt"

	"github.com/shopspring/decimal"

	"medfin-engine/internal/model"
)

// generatePayment covers payment plans and pre-tax account usage.
func (g *Generator) generatePayment(ctx *model.RecommendationContext, _ *model.RiskAssessment) []model.Recommendation {
	var recs []model.Recommendation
	owed := ctx.TotalOwed()

	capacity := ctx.PaymentCapacity()
	if owed.Sign() > 0 && capacity.Sign() > 0 && owed.GreaterThan(capacity.Mul(decimal.NewFromInt(2))) {
		rec := build(tplPaymentPlan, model.SavingsEstimate{Confidence: 0.95})
		rec.Description = fmt.Sprintf("%s A plan around $%s/month fits the current budget.", rec.Description, capacity.StringFixed(0))
		rec.Priority = model.PriorityMedium
		recs = append(recs, rec)
	}

	// Tax savings approximate a 25% marginal rate on the usable balance.
	if owed.Sign() > 0 {
		if ctx.HSABalance.Sign() > 0 {
			usable := decimal.Min(ctx.HSABalance, owed)
			tax := pct(usable, 0.25)
			rec := build(tplUseHSA, model.SavingsEstimate{
				Minimum:    pct(tax, 0.80),
				Expected:   tax,
				Maximum:    pct(tax, 1.20),
				Confidence: 0.99,
			})
			rec.Priority = model.PriorityMedium
			recs = append(recs, rec)
		}
		if ctx.FSABalance.Sign() > 0 {
			usable := decimal.Min(ctx.FSABalance, owed)
			tax := pct(usable, 0.25)
			rec := build(tplUseFSA, model.SavingsEstimate{
				Minimum:    pct(tax, 0.80),
				Expected:   tax,
				Maximum:    pct(tax, 1.20),
				Confidence: 0.99,
			})
			rec.Priority = model.PriorityHigh
			if ctx.Insurance != nil && ctx.Insurance.PlanYearEnd != nil {
				deadline := *ctx.Insurance.PlanYearEnd
				rec.Deadline = &deadline
			}
			recs = append(recs, rec)
		}
	}

	return recs
}
