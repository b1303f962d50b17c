package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"medfin-engine/internal/model"
	"medfin-engine/internal/rank"
	"medfin-engine/internal/recommend"
	"medfin-engine/internal/risk"
)

// Engine is the orchestrator: risk scoring, recommendation generation,
// and ranking run in sequence over a normalized context. Stateless and
// safe for concurrent use.
type Engine struct {
	risk      *risk.Engine
	generator *recommend.Generator
	ranker    *rank.Engine
}

func New(riskEngine *risk.Engine, generator *recommend.Generator, ranker *rank.Engine) *Engine {
	return &Engine{risk: riskEngine, generator: generator, ranker: ranker}
}

var outputLimitations = []string{
	"Savings estimates are heuristic ranges, not guarantees; individual opportunities may overlap",
	"Total savings is a simple sum across recommendations and may over-estimate the combined outcome",
	"Eligibility rules for assistance programs vary by state and provider; confirm before relying on them",
}

// Analyze runs the full pipeline and wraps the result in the analysis
// metadata envelope. It never fails on missing business data; partial
// contexts degrade confidence instead.
func (e *Engine) Analyze(ctx *model.RecommendationContext) *model.EngineOutput {
	start := time.Now()

	ctx.Normalize(start)

	assessment := e.risk.Calculate(ctx)
	recs := e.generator.Generate(ctx, &assessment)
	ranked := e.ranker.Rank(recs, &assessment, ctx.AsOf)

	out := &model.EngineOutput{
		RiskAssessment:        assessment,
		Recommendations:       ranked,
		ActionPlan:            buildActionPlan(ranked, ctx.AsOf),
		TotalSavings:          totalSavings(ranked),
		RiskReductionEstimate: totalRiskReduction(ranked),
		Limitations:           outputLimitations,
	}
	out.ExecutiveSummary = executiveSummary(&assessment, out)
	out.KeyTakeaways = keyTakeaways(&assessment, ranked)

	elapsed := time.Since(start)
	now := time.Now().UTC()
	out.AnalysisMetadata = model.AnalysisMetadata{
		AnalysisID:          uuid.New().String(),
		AnalysisStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
		AnalysisCompletedAt: now.Format(time.RFC3339),
		AnalysisDurationMs:  elapsed.Milliseconds(),
		AnalysisOutcome:     model.OutcomeSuccess,
	}

	zap.L().Info("analysis complete",
		zap.String("user_id", ctx.UserID),
		zap.Float64("risk_score", assessment.OverallScore),
		zap.Int("recommendations", len(ranked)),
		zap.Int64("duration_ms", out.AnalysisMetadata.AnalysisDurationMs))
	return out
}

// buildActionPlan buckets each recommendation exactly once; the first
// matching rule wins.
func buildActionPlan(ranked []model.RankedRecommendation, asOf string) model.ActionPlan {
	plan := model.ActionPlan{
		Immediate: []model.RankedRecommendation{},
		ThisWeek:  []model.RankedRecommendation{},
		ThisMonth: []model.RankedRecommendation{},
		Ongoing:   []model.RankedRecommendation{},
	}
	for _, r := range ranked {
		rec := &r.Recommendation
		days, hasDeadline := rec.DaysUntilDeadline(asOf)
		switch {
		case rec.Priority == model.PriorityCritical,
			hasDeadline && days <= 0:
			plan.Immediate = append(plan.Immediate, r)
		case hasDeadline && days <= 7,
			rec.Priority == model.PriorityHigh:
			plan.ThisWeek = append(plan.ThisWeek, r)
		case hasDeadline && days <= 30,
			rec.Priority == model.PriorityMedium:
			plan.ThisMonth = append(plan.ThisMonth, r)
		default:
			plan.Ongoing = append(plan.Ongoing, r)
		}
	}
	return plan
}

// totalSavings is a simple sum across recommendations. Overlapping
// opportunities are not deduplicated, so this is an upper-bound figure;
// the confidence is the savings-weighted average of the individual
// confidences.
func totalSavings(ranked []model.RankedRecommendation) model.SavingsEstimate {
	total := model.SavingsEstimate{}
	weighted := decimal.Zero
	for _, r := range ranked {
		s := r.Recommendation.Savings
		total.Minimum = total.Minimum.Add(s.Minimum)
		total.Expected = total.Expected.Add(s.Expected)
		total.Maximum = total.Maximum.Add(s.Maximum)
		weighted = weighted.Add(s.Expected.Mul(decimal.NewFromFloat(s.Confidence)))
	}
	if total.Expected.Sign() > 0 {
		conf, _ := weighted.Div(total.Expected).Float64()
		total.Confidence = conf
	} else {
		total.Confidence = 0.5
	}
	return total
}

// totalRiskReduction applies diminishing returns down the ranked order:
// each action taken leaves less risk for the next to remove.
func totalRiskReduction(ranked []model.RankedRecommendation) float64 {
	total := 0.0
	for i, r := range ranked {
		total += r.Factors.RiskReduction * 0.3 * math.Pow(0.9, float64(i))
	}
	if total > 80 {
		total = 80
	}
	return total
}

func executiveSummary(assessment *model.RiskAssessment, out *model.EngineOutput) string {
	s := fmt.Sprintf("Medical-financial risk is %s (%.0f/100) with %d recommended action(s).",
		assessment.Category, assessment.OverallScore, len(out.Recommendations))
	if out.TotalSavings.Expected.Sign() > 0 {
		s += fmt.Sprintf(" Acting on them could save around $%s.", out.TotalSavings.Expected.StringFixed(0))
	}
	if n := len(out.ActionPlan.Immediate); n > 0 {
		s += fmt.Sprintf(" %d item(s) need immediate attention.", n)
	}
	return s
}

// keyTakeaways produces up to five short observations: the risk
// framing, the top action, the quick wins, and the critical factors.
func keyTakeaways(assessment *model.RiskAssessment, ranked []model.RankedRecommendation) []string {
	var takeaways []string

	takeaways = append(takeaways, fmt.Sprintf("Overall risk is %s at %.0f/100",
		assessment.Category, assessment.OverallScore))

	if len(ranked) > 0 {
		top := ranked[0].Recommendation
		takeaways = append(takeaways, fmt.Sprintf("Start with: %s (expected savings $%s)",
			top.Title, top.Savings.Expected.StringFixed(0)))
	}

	quickWins := 0
	quickTotal := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for _, r := range ranked {
		rec := &r.Recommendation
		easy := rec.Difficulty == model.DifficultyTrivial || rec.Difficulty == model.DifficultyEasy
		if easy && rec.Savings.Expected.GreaterThanOrEqual(hundred) {
			quickWins++
			quickTotal = quickTotal.Add(rec.Savings.Expected)
		}
	}
	if quickWins > 0 {
		takeaways = append(takeaways, fmt.Sprintf("%d quick win(s) worth about $%s combined",
			quickWins, quickTotal.StringFixed(0)))
	}

	if n := len(assessment.CriticalFactors); n > 0 {
		takeaways = append(takeaways, fmt.Sprintf("%d critical risk factor(s) need attention", n))
	}

	if len(takeaways) > 5 {
		takeaways = takeaways[:5]
	}
	return takeaways
}
