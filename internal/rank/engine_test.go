package rank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfin-engine/internal/model"
)

const asOf = "2026-08-30"

func rec(id string, priority string, expected int64, confidence float64) model.Recommendation {
	return model.Recommendation{
		RecommendationID:   id,
		Category:           model.CategoryNegotiation,
		Priority:           priority,
		Difficulty:         model.DifficultyModerate,
		SuccessProbability: 0.5,
		Savings: model.SavingsEstimate{
			Expected:   decimal.NewFromInt(expected),
			Maximum:    decimal.NewFromInt(expected),
			Confidence: confidence,
		},
	}
}

func TestRankTotality(t *testing.T) {
	recs := []model.Recommendation{
		rec("rec_001", model.PriorityLow, 100, 0.5),
		rec("rec_002", model.PriorityCritical, 5000, 0.9),
		rec("rec_003", model.PriorityMedium, 800, 0.7),
		rec("rec_004", model.PriorityInformational, 0, 0.5),
	}
	ranked := New(nil).Rank(recs, &model.RiskAssessment{OverallScore: 50}, asOf)

	require.Len(t, ranked, len(recs))

	seen := map[string]bool{}
	for i, r := range ranked {
		assert.Equal(t, i+1, r.FinalRank)
		seen[r.Recommendation.RecommendationID] = true
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].CompositeScore, r.CompositeScore)
		}
		assert.Equal(t, r.CompositeScore, r.Recommendation.CompositeScore)
	}
	assert.Len(t, seen, len(recs))
}

func TestStableTieBreakKeepsGenerationOrder(t *testing.T) {
	recs := []model.Recommendation{
		rec("rec_001", model.PriorityMedium, 800, 0.7),
		rec("rec_002", model.PriorityMedium, 800, 0.7),
	}
	ranked := New(nil).Rank(recs, &model.RiskAssessment{OverallScore: 50}, asOf)

	assert.Equal(t, "rec_001", ranked[0].Recommendation.RecommendationID)
	assert.Equal(t, "rec_002", ranked[1].Recommendation.RecommendationID)
}

func TestUrgencySteps(t *testing.T) {
	cases := []struct {
		deadline string
		want     float64
	}{
		{"2026-08-20", 100}, // overdue
		{"2026-08-30", 95},  // today
		{"2026-09-02", 85},  // 3 days
		{"2026-09-06", 70},  // 7 days
		{"2026-09-13", 55},  // 14 days
		{"2026-09-29", 40},  // 30 days
		{"2026-12-01", 25},  // far out
	}
	for _, tc := range cases {
		r := rec("rec_001", model.PriorityMedium, 0, 0.5)
		d := tc.deadline
		r.Deadline = &d
		assert.Equal(t, tc.want, urgencyScore(&r, asOf), "deadline=%s", tc.deadline)
	}

	noDeadline := rec("rec_001", model.PriorityMedium, 0, 0.5)
	assert.Equal(t, 25.0, urgencyScore(&noDeadline, asOf))
}

func TestUrgencyPriorityAdjustment(t *testing.T) {
	base := rec("rec_001", "", 0, 0.5)
	overdue := "2026-08-01"
	base.Deadline = &overdue

	base.Priority = model.PriorityCritical
	assert.Equal(t, 100.0, urgencyScore(&base, asOf)) // clamped

	base.Priority = model.PriorityLow
	assert.Equal(t, 90.0, urgencyScore(&base, asOf))

	base.Priority = model.PriorityInformational
	assert.Equal(t, 80.0, urgencyScore(&base, asOf))
}

func TestSavingsScoreStepsAndDampener(t *testing.T) {
	cases := []struct {
		expected int64
		base     float64
	}{
		{15000, 100},
		{5000, 90},
		{2000, 75},
		{1000, 60},
		{500, 45},
		{200, 30},
		{100, 20},
		{50, 10},
	}
	for _, tc := range cases {
		full := rec("rec_001", model.PriorityMedium, tc.expected, 1.0)
		assert.InDelta(t, tc.base, savingsScore(&full), 1e-9, "expected=%d", tc.expected)

		none := rec("rec_001", model.PriorityMedium, tc.expected, 0.0)
		assert.InDelta(t, tc.base*0.7, savingsScore(&none), 1e-9, "expected=%d", tc.expected)
	}
}

func TestRiskReductionScalesWithAmbientRisk(t *testing.T) {
	r := rec("rec_001", model.PriorityMedium, 0, 0.5)
	r.Category = model.CategoryAssistanceApplication
	r.RiskReductionScore = 40

	// (40 + 30) * (1 + risk/200)
	assert.InDelta(t, 70.0, riskReductionScore(&r, 0), 1e-9)
	assert.InDelta(t, 87.5, riskReductionScore(&r, 50), 1e-9)
	assert.InDelta(t, 100.0, riskReductionScore(&r, 100), 1e-9) // clamped from 105

	r.Category = "unknown_category"
	assert.InDelta(t, 45.0, riskReductionScore(&r, 0), 1e-9)
}

func TestEaseScores(t *testing.T) {
	assert.Equal(t, 100.0, easeScore(model.DifficultyTrivial))
	assert.Equal(t, 80.0, easeScore(model.DifficultyEasy))
	assert.Equal(t, 60.0, easeScore(model.DifficultyModerate))
	assert.Equal(t, 40.0, easeScore(model.DifficultyChallenging))
	assert.Equal(t, 20.0, easeScore(model.DifficultyComplex))
}

func TestCustomWeights(t *testing.T) {
	w := &model.RankWeights{Urgency: 1.0}
	e := New(w)
	assert.Equal(t, 1.0, e.weights.Urgency)
	assert.Equal(t, 0.0, e.weights.SavingsImpact)

	// Weights that do not sum to 1.0 fall back to the defaults.
	bad := &model.RankWeights{Urgency: 0.5, SavingsImpact: 0.2}
	assert.Equal(t, DefaultWeights, New(bad).weights)
	assert.Equal(t, DefaultWeights, New(nil).weights)
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights
	assert.InDelta(t, 1.0, w.Urgency+w.SavingsImpact+w.Success+w.RiskReduction+w.Ease, 1e-9)
}

func TestRationale(t *testing.T) {
	assert.Equal(t, "balanced priority", rationale(&model.RankingFactors{}))
	assert.Equal(t, "time-critical", rationale(&model.RankingFactors{Urgency: 90}))
	assert.Equal(t, "significant savings, easy to act on",
		rationale(&model.RankingFactors{SavingsImpact: 85, Ease: 100}))
	assert.Equal(t, "high success likelihood", rationale(&model.RankingFactors{Success: 80}))
}

func TestSubScoresWithinBounds(t *testing.T) {
	recs := []model.Recommendation{
		rec("rec_001", model.PriorityCritical, 50000, 1.0),
		rec("rec_002", model.PriorityInformational, 0, 0.0),
	}
	ranked := New(nil).Rank(recs, &model.RiskAssessment{OverallScore: 100}, asOf)
	for _, r := range ranked {
		for _, s := range []float64{r.Factors.Urgency, r.Factors.SavingsImpact, r.Factors.Success, r.Factors.RiskReduction, r.Factors.Ease} {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
		}
	}
}
