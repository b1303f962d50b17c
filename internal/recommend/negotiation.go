package recommend

import (
	"github.com/shopspring/decimal"

	"medfin-engine/internal/model"
)

var negotiationFloor = decimal.NewFromInt(300)

// generateNegotiation emits per-bill discount plays: prompt-pay always,
// hardship when income qualifies, cash rate when uninsured.
func (g *Generator) generateNegotiation(ctx *model.RecommendationContext, _ *model.RiskAssessment) []model.Recommendation {
	fpl, hasFPL := ctx.FPL()

	var recs []model.Recommendation
	for _, b := range ctx.OpenBills() {
		if b.PatientBalance.LessThan(negotiationFloor) {
			continue
		}

		rec := build(tplPromptPay, model.SavingsEstimate{
			Minimum:    pct(b.PatientBalance, 0.10),
			Expected:   pct(b.PatientBalance, 0.20),
			Maximum:    pct(b.PatientBalance, 0.30),
			Confidence: 0.70,
		})
		rec.Priority = derivePriority(rec.Savings.Expected, nil)
		attachBill(&rec, &b)
		recs = append(recs, rec)

		if hasFPL && fpl < 400 {
			tier, conf := hardshipTier(fpl)
			hrec := build(tplHardship, model.SavingsEstimate{
				Minimum:    pct(b.PatientBalance, tier*0.5),
				Expected:   pct(b.PatientBalance, tier),
				Maximum:    pct(b.PatientBalance, tier*1.2),
				Confidence: conf,
			})
			hrec.Priority = derivePriority(hrec.Savings.Expected, nil)
			attachBill(&hrec, &b)
			recs = append(recs, hrec)
		}

		if ctx.Uninsured() {
			crec := build(tplCashRate, model.SavingsEstimate{
				Minimum:    pct(b.PatientBalance, 0.30),
				Expected:   pct(b.PatientBalance, 0.45),
				Maximum:    pct(b.PatientBalance, 0.60),
				Confidence: 0.60,
			})
			crec.Priority = derivePriority(crec.Savings.Expected, nil)
			attachBill(&crec, &b)
			recs = append(recs, crec)
		}
	}
	return recs
}

// hardshipTier returns the typical discount fraction and the estimate
// confidence for the household's FPL band.
func hardshipTier(fpl float64) (float64, float64) {
	var tier float64
	switch {
	case fpl < 200:
		tier = 0.50
	case fpl < 300:
		tier = 0.35
	default:
		tier = 0.20
	}
	conf := 0.45
	if fpl < 250 {
		conf = 0.60
	}
	return tier, conf
}

func attachBill(rec *model.Recommendation, b *model.Bill) {
	rec.TargetBillID = b.BillID
	rec.TargetProvider = b.Provider
	amt := b.PatientBalance
	rec.TargetAmount = &amt
}
