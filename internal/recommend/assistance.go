package recommend

import (
	"fmt"

	"github.com/shopspring/decimal"

	"medfin-engine/internal/model"
)

const medicaidFPLLimit = 138

// generateAssistance covers Medicaid and hospital charity care. The two
// rules are independent; a low-income household in an expansion state
// gets both.
func (g *Generator) generateAssistance(ctx *model.RecommendationContext, _ *model.RiskAssessment) []model.Recommendation {
	fpl, ok := ctx.FPL()
	if !ok {
		return nil
	}
	owed := ctx.TotalOwed()

	var recs []model.Recommendation

	if fpl < medicaidFPLLimit && g.catalog.IsExpansionState(ctx.State) {
		rec := build(tplApplyMedicaid, model.SavingsEstimate{
			Minimum:    pct(owed, 0.70),
			Expected:   pct(owed, 0.90),
			Maximum:    owed,
			Confidence: 0.75,
		})
		rec.Priority = model.PriorityCritical
		recs = append(recs, rec)
	}

	if fpl < 400 && owed.GreaterThan(decimal.NewFromInt(500)) {
		if tier, ok := g.catalog.CharityTierFor(fpl); ok {
			expected := pct(owed, tier.Discount)
			rec := build(tplApplyCharity, model.SavingsEstimate{
				Minimum:    pct(expected, 0.70),
				Expected:   expected,
				Maximum:    expected,
				Confidence: tier.Confidence,
			})
			rec.Description = fmt.Sprintf("%s At %.0f%% of the poverty line the typical discount is %.0f%%.", rec.Description, fpl, tier.Discount*100)
			if fpl < 200 {
				rec.Priority = model.PriorityHigh
			} else {
				rec.Priority = model.PriorityMedium
			}
			recs = append(recs, rec)
		}
	}

	return recs
}
