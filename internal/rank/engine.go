package rank

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"medfin-engine/internal/model"
)

// DefaultWeights is the standard five-factor blend; sums to 1.0.
var DefaultWeights = model.RankWeights{
	Urgency:       0.25,
	SavingsImpact: 0.25,
	Success:       0.20,
	RiskReduction: 0.15,
	Ease:          0.15,
}

// Engine orders recommendations by composite priority. Stateless.
type Engine struct {
	weights model.RankWeights
}

// New returns a ranking engine with the given weights, or the defaults
// when the weights do not sum to 1.0.
func New(weights *model.RankWeights) *Engine {
	if weights == nil {
		return &Engine{weights: DefaultWeights}
	}
	sum := weights.Urgency + weights.SavingsImpact + weights.Success + weights.RiskReduction + weights.Ease
	if sum < 0.999 || sum > 1.001 {
		return &Engine{weights: DefaultWeights}
	}
	return &Engine{weights: *weights}
}

// Rank scores and orders every recommendation, descending by composite
// score. The sort is stable so ties keep generation order. Final ranks
// are 1..N and the composite score is written back for display.
func (e *Engine) Rank(recs []model.Recommendation, assessment *model.RiskAssessment, asOf string) []model.RankedRecommendation {
	ranked := make([]model.RankedRecommendation, len(recs))
	for i, rec := range recs {
		factors := model.RankingFactors{
			Urgency:       urgencyScore(&rec, asOf),
			SavingsImpact: savingsScore(&rec),
			Success:       rec.SuccessProbability * 100,
			RiskReduction: riskReductionScore(&rec, assessment.OverallScore),
			Ease:          easeScore(rec.Difficulty),
		}
		ranked[i] = model.RankedRecommendation{
			Recommendation: rec,
			Factors:        factors,
			CompositeScore: factors.Composite(e.weights),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})
	for i := range ranked {
		ranked[i].FinalRank = i + 1
		ranked[i].Recommendation.CompositeScore = ranked[i].CompositeScore
		ranked[i].Rationale = rationale(&ranked[i].Factors)
	}
	return ranked
}

// urgencyScore steps down with deadline distance, then shifts by the
// assigned priority.
func urgencyScore(rec *model.Recommendation, asOf string) float64 {
	score := 25.0
	if days, ok := rec.DaysUntilDeadline(asOf); ok {
		switch {
		case days < 0:
			score = 100
		case days == 0:
			score = 95
		case days <= 3:
			score = 85
		case days <= 7:
			score = 70
		case days <= 14:
			score = 55
		case days <= 30:
			score = 40
		default:
			score = 25
		}
	}

	switch rec.Priority {
	case model.PriorityCritical:
		score += 20
	case model.PriorityHigh:
		score += 10
	case model.PriorityLow:
		score -= 10
	case model.PriorityInformational:
		score -= 20
	}
	return clamp(score)
}

var savingsSteps = []struct {
	floor decimal.Decimal
	score float64
}{
	{decimal.NewFromInt(10000), 100},
	{decimal.NewFromInt(5000), 90},
	{decimal.NewFromInt(2000), 75},
	{decimal.NewFromInt(1000), 60},
	{decimal.NewFromInt(500), 45},
	{decimal.NewFromInt(200), 30},
	{decimal.NewFromInt(100), 20},
}

// savingsScore steps by expected dollars, dampened toward 70% for
// low-confidence estimates.
func savingsScore(rec *model.Recommendation) float64 {
	score := 10.0
	for _, step := range savingsSteps {
		if rec.Savings.Expected.GreaterThanOrEqual(step.floor) {
			score = step.score
			break
		}
	}
	return clamp(score * (0.7 + rec.Savings.Confidence*0.3))
}

var categoryBonuses = map[string]float64{
	model.CategoryAssistanceApplication: 30,
	model.CategoryBillDispute:           20,
	model.CategoryInsuranceAppeal:       20,
	model.CategoryNegotiation:           15,
	model.CategoryPaymentOptimization:   10,
}

// riskReductionScore values an action higher when ambient risk is high:
// the same intervention matters more in a worse situation.
func riskReductionScore(rec *model.Recommendation, overallRisk float64) float64 {
	bonus, ok := categoryBonuses[rec.Category]
	if !ok {
		bonus = 5
	}
	multiplier := 1.0 + overallRisk/200
	return clamp((rec.RiskReductionScore + bonus) * multiplier)
}

func easeScore(difficulty string) float64 {
	switch difficulty {
	case model.DifficultyTrivial:
		return 100
	case model.DifficultyEasy:
		return 80
	case model.DifficultyModerate:
		return 60
	case model.DifficultyChallenging:
		return 40
	case model.DifficultyComplex:
		return 20
	default:
		return 60
	}
}

const notableThreshold = 80

func rationale(f *model.RankingFactors) string {
	var reasons []string
	if f.Urgency >= notableThreshold {
		reasons = append(reasons, "time-critical")
	}
	if f.SavingsImpact >= notableThreshold {
		reasons = append(reasons, "significant savings")
	}
	if f.Success >= notableThreshold {
		reasons = append(reasons, "high success likelihood")
	}
	if f.Ease >= notableThreshold {
		reasons = append(reasons, "easy to act on")
	}
	if len(reasons) == 0 {
		return "balanced priority"
	}
	return strings.Join(reasons, ", ")
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
