package recommend

import (
	"github.com/shopspring/decimal"

	"medfin-engine/internal/model"
)

// generateInsuranceOptimization suggests pulling elective care forward
// when the plan year is about to reset an almost-met deductible.
func (g *Generator) generateInsuranceOptimization(ctx *model.RecommendationContext, _ *model.RiskAssessment) []model.Recommendation {
	ins := ctx.Insurance
	if ins == nil || ins.PlanYearEnd == nil {
		return nil
	}
	end, ok := model.ParseDate(*ins.PlanYearEnd)
	if !ok {
		return nil
	}
	days := model.DaysBetween(ctx.AsOfDate(), end)
	if days < 0 || days >= 60 {
		return nil
	}
	if ins.DeductiblePctMet() <= 0.70 && ins.OOPPctMet() <= 0.70 {
		return nil
	}

	remaining := ins.OOPRemaining()
	if remaining.Sign() <= 0 {
		remaining = ins.DeductibleTotal.Sub(ins.DeductibleMet)
	}
	if remaining.Sign() <= 0 {
		return nil
	}

	rec := build(tplScheduleCare, model.SavingsEstimate{
		Minimum:    pct(remaining, 0.30),
		Expected:   pct(remaining, 0.50),
		Maximum:    remaining,
		Confidence: 0.60,
	})
	deadline := *ins.PlanYearEnd
	rec.Deadline = &deadline
	rec.Priority = derivePriority(rec.Savings.Expected, &days)
	return []model.Recommendation{rec}
}

var itemizedFloor = decimal.NewFromInt(500)

// generateDocumentRequests asks for itemized statements on large bills
// that arrived as summaries.
func (g *Generator) generateDocumentRequests(ctx *model.RecommendationContext, _ *model.RiskAssessment) []model.Recommendation {
	var recs []model.Recommendation
	for _, b := range ctx.OpenBills() {
		if len(b.LineItems) >= 5 || !b.PatientBalance.GreaterThan(itemizedFloor) {
			continue
		}
		rec := build(tplItemizedBill, model.SavingsEstimate{
			Minimum:    decimal.Zero,
			Expected:   pct(b.PatientBalance, 0.15),
			Maximum:    pct(b.PatientBalance, 0.35),
			Confidence: 0.70,
		})
		rec.Priority = derivePriority(rec.Savings.Expected, nil)
		attachBill(&rec, &b)
		recs = append(recs, rec)
	}
	return recs
}
