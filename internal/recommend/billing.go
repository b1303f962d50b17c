package recommend

import (
	"fmt"

	"medfin-engine/internal/billcheck"
	"medfin-engine/internal/model"
)

// generateBilling turns detected line-item errors into dispute
// recommendations, one per finding.
func (g *Generator) generateBilling(ctx *model.RecommendationContext, _ *model.RiskAssessment) []model.Recommendation {
	var recs []model.Recommendation
	for _, f := range g.checker.Analyze(ctx.OpenBills()) {
		var rec model.Recommendation
		switch f.FindingType {
		case billcheck.FindingDuplicate:
			rec = build(tplDisputeDuplicate, model.SavingsEstimate{
				Minimum:    pct(f.Amount, 0.85),
				Expected:   pct(f.Amount, 0.90),
				Maximum:    pct(f.Amount, 0.95),
				Confidence: 0.90,
			})
			rec.Priority = model.PriorityCritical
		case billcheck.FindingUnbundling:
			rec = build(tplDisputeUnbundling, model.SavingsEstimate{
				Minimum:    pct(f.Amount, 0.60),
				Expected:   pct(f.Amount, 0.85),
				Maximum:    f.Amount,
				Confidence: 0.80,
			})
			rec.Priority = model.PriorityHigh
		case billcheck.FindingPreventive:
			rec = build(tplRecodePreventive, model.SavingsEstimate{
				Minimum:    pct(f.Amount, 0.50),
				Expected:   pct(f.Amount, 0.85),
				Maximum:    f.Amount,
				Confidence: 0.70,
			})
			rec.Priority = model.PriorityMedium
		default:
			continue
		}
		rec.Description = fmt.Sprintf("%s %s", rec.Description, f.Description)
		rec.TargetBillID = f.BillID
		rec.TargetProvider = f.Provider
		amt := f.Amount
		rec.TargetAmount = &amt
		recs = append(recs, rec)
	}
	return recs
}
