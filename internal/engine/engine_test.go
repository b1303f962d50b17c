package engine

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfin-engine/internal/billcheck"
	"medfin-engine/internal/model"
	"medfin-engine/internal/programcatalog"
	"medfin-engine/internal/rank"
	"medfin-engine/internal/recommend"
	"medfin-engine/internal/risk"
)

func newTestEngine() *Engine {
	checker := billcheck.New(billcheck.DefaultTables())
	return New(
		risk.New(checker),
		recommend.New(checker, programcatalog.Default()),
		rank.New(nil),
	)
}

func fpl(v float64) *float64 { return &v }

func TestAnalyzeEmptyContext(t *testing.T) {
	out := newTestEngine().Analyze(&model.RecommendationContext{UserID: "u1"})

	assert.Equal(t, model.OutcomeSuccess, out.AnalysisMetadata.AnalysisOutcome)
	assert.NotEmpty(t, out.AnalysisMetadata.AnalysisID)
	assert.Equal(t, model.RiskModerate, out.RiskAssessment.Category)
	assert.NotEmpty(t, out.RiskAssessment.DataQualityWarnings)
	assert.NotEmpty(t, out.ExecutiveSummary)
	assert.NotEmpty(t, out.Limitations)
}

func TestAnalyzeDuplicateBillScenario(t *testing.T) {
	ctx := &model.RecommendationContext{
		UserID: "u1",
		AsOf:   "2026-08-30",
		Bills: []model.Bill{{
			BillID:         "b1",
			Provider:       "General Hospital",
			TotalBilled:    decimal.NewFromInt(12000),
			InsurancePaid:  decimal.NewFromInt(8000),
			PatientBalance: decimal.NewFromInt(4000),
			LineItems: []model.LineItem{
				{Code: "93000", ServiceDate: "2026-05-01", Amount: decimal.NewFromInt(2200)},
				{Code: "93000", ServiceDate: "2026-05-01", Amount: decimal.NewFromInt(2200)},
			},
		}},
	}
	out := newTestEngine().Analyze(ctx)

	billErrors := out.RiskAssessment.Dimension(model.DimBillErrors)
	require.NotNil(t, billErrors)
	assert.Greater(t, billErrors.Score, 0.0)
	assert.NotEmpty(t, billErrors.Factors)

	var dispute *model.RankedRecommendation
	for i := range out.Recommendations {
		if out.Recommendations[i].Recommendation.Title == "Dispute duplicate charge" {
			dispute = &out.Recommendations[i]
		}
	}
	require.NotNil(t, dispute)
	assert.Equal(t, model.PriorityCritical, dispute.Recommendation.Priority)
	exp := dispute.Recommendation.Savings.Expected
	assert.True(t, exp.GreaterThanOrEqual(decimal.NewFromInt(1870)))
	assert.True(t, exp.LessThanOrEqual(decimal.NewFromInt(2090)))
	assert.GreaterOrEqual(t, dispute.Recommendation.Savings.Confidence, 0.90)

	// Critical disputes land in the immediate bucket.
	foundImmediate := false
	for _, r := range out.ActionPlan.Immediate {
		if r.Recommendation.Title == "Dispute duplicate charge" {
			foundImmediate = true
		}
	}
	assert.True(t, foundImmediate)
}

func TestAnalyzeMedicaidScenario(t *testing.T) {
	ctx := &model.RecommendationContext{
		UserID:        "u1",
		AsOf:          "2026-08-30",
		FPLPercentage: fpl(90),
		State:         "NY",
		Bills: []model.Bill{{
			BillID:         "b1",
			Provider:       "County Medical",
			PatientBalance: decimal.NewFromInt(3000),
		}},
	}
	out := newTestEngine().Analyze(ctx)

	titles := map[string]decimal.Decimal{}
	for _, r := range out.Recommendations {
		titles[r.Recommendation.Title] = r.Recommendation.Savings.Expected
	}
	require.Contains(t, titles, "Apply for Medicaid")
	require.Contains(t, titles, "Apply for hospital charity care")
	assert.True(t, titles["Apply for Medicaid"].Equal(decimal.NewFromInt(2700)))
	assert.True(t, titles["Apply for hospital charity care"].Equal(decimal.NewFromInt(3000)))
}

func TestDeterminism(t *testing.T) {
	ctx := func() *model.RecommendationContext {
		end := "2026-10-15"
		return &model.RecommendationContext{
			UserID:        "u1",
			AsOf:          "2026-08-30",
			FPLPercentage: fpl(150),
			State:         "CA",
			Income:        &model.IncomeSummary{MonthlyGross: decimal.NewFromInt(2500), MonthlyNet: decimal.NewFromInt(2100)},
			Debt:          &model.DebtSummary{DTIRatio: 0.40, MedicalDebt: decimal.NewFromInt(8000), InCollections: decimal.NewFromInt(1500)},
			Insurance: &model.InsurancePlan{
				DeductibleTotal: decimal.NewFromInt(2000),
				DeductibleMet:   decimal.NewFromInt(1600),
				OOPMax:          decimal.NewFromInt(6000),
				OOPMet:          decimal.NewFromInt(2500),
				PlanYearEnd:     &end,
			},
			Bills: []model.Bill{{
				BillID:         "b1",
				Provider:       "General Hospital",
				TotalBilled:    decimal.NewFromInt(5000),
				PatientBalance: decimal.NewFromInt(3500),
			}},
		}
	}

	e := newTestEngine()
	a := e.Analyze(ctx())
	b := e.Analyze(ctx())

	// Metadata carries fresh IDs and timestamps; everything else must be
	// bit-identical.
	a.AnalysisMetadata = model.AnalysisMetadata{}
	b.AnalysisMetadata = model.AnalysisMetadata{}
	aj, err := json.Marshal(a)
	require.NoError(t, err)
	bj, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(aj), string(bj))
}

func TestActionPlanBucketsExactlyOnce(t *testing.T) {
	due := "2026-08-25"
	ctx := &model.RecommendationContext{
		UserID:        "u1",
		AsOf:          "2026-08-30",
		FPLPercentage: fpl(120),
		State:         "CA",
		HSABalance:    decimal.NewFromInt(900),
		Bills: []model.Bill{
			{BillID: "b1", Provider: "Hospital", PatientBalance: decimal.NewFromInt(4000), DueDate: &due},
			{BillID: "b2", Provider: "Clinic", PatientBalance: decimal.NewFromInt(600)},
		},
	}
	out := newTestEngine().Analyze(ctx)

	plan := out.ActionPlan
	total := len(plan.Immediate) + len(plan.ThisWeek) + len(plan.ThisMonth) + len(plan.Ongoing)
	assert.Equal(t, len(out.Recommendations), total)

	seen := map[string]bool{}
	for _, bucket := range [][]model.RankedRecommendation{plan.Immediate, plan.ThisWeek, plan.ThisMonth, plan.Ongoing} {
		for _, r := range bucket {
			id := r.Recommendation.RecommendationID
			assert.False(t, seen[id], "recommendation %s bucketed twice", id)
			seen[id] = true
		}
	}
}

func TestTotalSavingsIsSimpleSum(t *testing.T) {
	ctx := &model.RecommendationContext{
		UserID:        "u1",
		AsOf:          "2026-08-30",
		FPLPercentage: fpl(150),
		Bills:         []model.Bill{{BillID: "b1", Provider: "Hospital", PatientBalance: decimal.NewFromInt(2000)}},
	}
	out := newTestEngine().Analyze(ctx)

	expectedSum := decimal.Zero
	for _, r := range out.Recommendations {
		expectedSum = expectedSum.Add(r.Recommendation.Savings.Expected)
	}
	assert.True(t, out.TotalSavings.Expected.Equal(expectedSum))
	assert.True(t, out.TotalSavings.Minimum.LessThanOrEqual(out.TotalSavings.Expected))
	assert.True(t, out.TotalSavings.Expected.LessThanOrEqual(out.TotalSavings.Maximum))
	assert.GreaterOrEqual(t, out.TotalSavings.Confidence, 0.0)
	assert.LessOrEqual(t, out.TotalSavings.Confidence, 1.0)
}

func TestRiskReductionEstimateCapped(t *testing.T) {
	ctx := &model.RecommendationContext{
		UserID:        "u1",
		AsOf:          "2026-08-30",
		FPLPercentage: fpl(90),
		State:         "CA",
		Debt:          &model.DebtSummary{DTIRatio: 0.6, MedicalDebt: decimal.NewFromInt(40000), InCollections: decimal.NewFromInt(9000)},
		Bills: []model.Bill{
			{BillID: "b1", Provider: "Hospital", PatientBalance: decimal.NewFromInt(15000)},
			{BillID: "b2", Provider: "Clinic", PatientBalance: decimal.NewFromInt(8000)},
		},
	}
	out := newTestEngine().Analyze(ctx)

	assert.Greater(t, out.RiskReductionEstimate, 0.0)
	assert.LessOrEqual(t, out.RiskReductionEstimate, 80.0)
}

func TestKeyTakeawaysLimited(t *testing.T) {
	ctx := &model.RecommendationContext{
		UserID:        "u1",
		AsOf:          "2026-08-30",
		FPLPercentage: fpl(90),
		State:         "CA",
		Bills:         []model.Bill{{BillID: "b1", Provider: "Hospital", PatientBalance: decimal.NewFromInt(6000)}},
	}
	out := newTestEngine().Analyze(ctx)

	assert.NotEmpty(t, out.KeyTakeaways)
	assert.LessOrEqual(t, len(out.KeyTakeaways), 5)
}
