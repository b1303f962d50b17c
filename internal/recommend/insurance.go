package recommend

import (
	"github.com/shopspring/decimal"

	"medfin-engine/internal/model"
)

var twoHundred = decimal.NewFromInt(200)

// generateInsurance covers unfiled claims and appealable coverage gaps.
func (g *Generator) generateInsurance(ctx *model.RecommendationContext, _ *model.RiskAssessment) []model.Recommendation {
	var recs []model.Recommendation

	if !ctx.Uninsured() {
		for _, b := range ctx.OpenBills() {
			if b.InsurancePaid.Sign() != 0 || !b.TotalBilled.GreaterThan(twoHundred) {
				continue
			}
			rec := build(tplVerifyClaim, model.SavingsEstimate{
				Minimum:    decimal.Zero,
				Expected:   pct(b.PatientBalance, 0.60),
				Maximum:    pct(b.PatientBalance, 0.90),
				Confidence: 0.50,
			})
			rec.Priority = derivePriority(rec.Savings.Expected, nil)
			rec.TargetBillID = b.BillID
			rec.TargetProvider = b.Provider
			amt := b.PatientBalance
			rec.TargetAmount = &amt
			recs = append(recs, rec)
		}

		for _, gap := range ctx.Insurance.CoverageGaps {
			if gap.Resolved {
				continue
			}
			if gap.GapType != model.GapClaimDenial && gap.GapType != model.GapOutOfNetwork {
				continue
			}
			if !gap.EstimatedExposure.GreaterThan(twoHundred) {
				continue
			}
			rec := build(tplAppealGap, model.SavingsEstimate{
				Minimum:    decimal.Zero,
				Expected:   pct(gap.EstimatedExposure, 0.40),
				Maximum:    gap.EstimatedExposure,
				Confidence: 0.45,
			})
			rec.Priority = derivePriority(rec.Savings.Expected, nil)
			amt := gap.EstimatedExposure
			rec.TargetAmount = &amt
			recs = append(recs, rec)
		}
	}

	return recs
}
