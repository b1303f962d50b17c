package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2026-03-15")
	require.True(t, ok)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())

	for _, bad := range []string{"", "2026-3-15", "2026/03/15", "not-a-date", "2026-13-01", "2026-00-10"} {
		_, ok := ParseDate(bad)
		assert.False(t, ok, "expected %q to fail", bad)
	}
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseDate("2026-01-01")
	b, _ := ParseDate("2026-01-31")
	assert.Equal(t, 30, DaysBetween(a, b))
	assert.Equal(t, -30, DaysBetween(b, a))
}

func TestScoreToCategory(t *testing.T) {
	assert.Equal(t, RiskCritical, ScoreToCategory(80))
	assert.Equal(t, RiskHigh, ScoreToCategory(79))
	assert.Equal(t, RiskModerate, ScoreToCategory(40))
	assert.Equal(t, RiskLow, ScoreToCategory(20))
	assert.Equal(t, RiskMinimal, ScoreToCategory(0))
}

func TestProbabilityToLikelihood(t *testing.T) {
	assert.Equal(t, LikelihoodVeryHigh, ProbabilityToLikelihood(0.80))
	assert.Equal(t, LikelihoodHigh, ProbabilityToLikelihood(0.60))
	assert.Equal(t, LikelihoodModerate, ProbabilityToLikelihood(0.40))
	assert.Equal(t, LikelihoodLow, ProbabilityToLikelihood(0.20))
	assert.Equal(t, LikelihoodUncertain, ProbabilityToLikelihood(0.19))
}

func TestNormalizeClampsInsurance(t *testing.T) {
	ctx := RecommendationContext{
		UserID: "u1",
		Insurance: &InsurancePlan{
			DeductibleTotal: decimal.NewFromInt(2000),
			DeductibleMet:   decimal.NewFromInt(2500),
			OOPMax:          decimal.NewFromInt(6000),
			OOPMet:          decimal.NewFromInt(9000),
		},
	}
	ctx.Normalize(time.Now())

	assert.True(t, ctx.Insurance.DeductibleMet.Equal(decimal.NewFromInt(2000)))
	assert.True(t, ctx.Insurance.OOPMet.Equal(decimal.NewFromInt(6000)))
	assert.True(t, ctx.Insurance.OOPRemaining().Equal(decimal.Zero))
}

func TestNormalizeDefaultsAsOf(t *testing.T) {
	ctx := RecommendationContext{UserID: "u1"}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ctx.Normalize(now)
	assert.Equal(t, "2026-08-30", ctx.AsOf)

	ctx2 := RecommendationContext{UserID: "u1", AsOf: "2026-01-01"}
	ctx2.Normalize(now)
	assert.Equal(t, "2026-01-01", ctx2.AsOf)
}

func TestOpenBillsExcludesSettled(t *testing.T) {
	ctx := RecommendationContext{
		Bills: []Bill{
			{BillID: "b1", PatientBalance: decimal.NewFromInt(500)},
			{BillID: "b2", PatientBalance: decimal.Zero},
			{BillID: "b3", PatientBalance: decimal.NewFromInt(-20)},
		},
	}
	open := ctx.OpenBills()
	require.Len(t, open, 1)
	assert.Equal(t, "b1", open[0].BillID)
	assert.True(t, ctx.TotalOwed().Equal(decimal.NewFromInt(500)))
}

func TestBillDaysUntilDue(t *testing.T) {
	due := "2026-09-10"
	b := Bill{DueDate: &due, PatientBalance: decimal.NewFromInt(100)}

	days, ok := b.DaysUntilDue("2026-09-01")
	require.True(t, ok)
	assert.Equal(t, 9, days)
	assert.False(t, b.PastDue("2026-09-01"))
	assert.True(t, b.PastDue("2026-09-11"))

	noDue := Bill{PatientBalance: decimal.NewFromInt(100)}
	_, ok = noDue.DaysUntilDue("2026-09-01")
	assert.False(t, ok)
	assert.False(t, noDue.PastDue("2026-09-01"))
}

func TestPaymentCapacityDefaultsToTenPercentNet(t *testing.T) {
	ctx := RecommendationContext{
		Income: &IncomeSummary{MonthlyNet: decimal.NewFromInt(3000)},
	}
	assert.True(t, ctx.PaymentCapacity().Equal(decimal.NewFromInt(300)))

	explicit := decimal.NewFromInt(450)
	ctx.MonthlyPaymentCapacity = &explicit
	assert.True(t, ctx.PaymentCapacity().Equal(explicit))

	empty := RecommendationContext{}
	assert.True(t, empty.PaymentCapacity().Equal(decimal.Zero))
}

func TestProcedurePatientCostDefault(t *testing.T) {
	p := Procedure{EstimatedCost: decimal.NewFromInt(1000)}
	assert.True(t, p.PatientCost().Equal(decimal.NewFromInt(300)))

	explicit := decimal.NewFromInt(150)
	p.PatientResponsibility = &explicit
	assert.True(t, p.PatientCost().Equal(explicit))
}

func TestWeightedContribution(t *testing.T) {
	f := RiskFactor{Score: 80, Weight: 0.12}
	assert.InDelta(t, 9.6, f.WeightedContribution(), 1e-9)
}
