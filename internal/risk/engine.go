package risk

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"medfin-engine/internal/billcheck"
	"medfin-engine/internal/model"
)

// Fixed dimension weights; sum to 1.0.
var dimensionWeights = map[string]float64{
	model.DimIncomeStability:     0.12,
	model.DimDebtBurden:          0.12,
	model.DimMedicalDebtRatio:    0.12,
	model.DimUpcomingCosts:       0.10,
	model.DimInsuranceGaps:       0.10,
	model.DimBillErrors:          0.08,
	model.DimPaymentHistory:      0.10,
	model.DimCollectionsExposure: 0.12,
	model.DimCoverageAdequacy:    0.08,
	model.DimAffordability:       0.06,
}

const (
	defaultScore       = 40.0
	criticalBoost      = 10.0
	topFactorCount     = 5
	maxInsightCount    = 3
	planYearCautionDay = 30
)

// dimensionResult is what a single dimension scorer produces.
type dimensionResult struct {
	score    float64
	factors  []model.RiskFactor
	warnings []string
}

// Engine scores a household's medical-financial risk across ten
// weighted dimensions. Stateless; safe for concurrent use.
type Engine struct {
	checker *billcheck.Analyzer
}

func New(checker *billcheck.Analyzer) *Engine {
	return &Engine{checker: checker}
}

type dimensionScorer struct {
	dimension string
	score     func(*model.RecommendationContext) dimensionResult
}

func (e *Engine) scorers() []dimensionScorer {
	return []dimensionScorer{
		{model.DimIncomeStability, e.scoreIncomeStability},
		{model.DimDebtBurden, e.scoreDebtBurden},
		{model.DimMedicalDebtRatio, e.scoreMedicalDebtRatio},
		{model.DimUpcomingCosts, e.scoreUpcomingCosts},
		{model.DimInsuranceGaps, e.scoreInsuranceGaps},
		{model.DimBillErrors, e.scoreBillErrors},
		{model.DimPaymentHistory, e.scorePaymentHistory},
		{model.DimCollectionsExposure, e.scoreCollectionsExposure},
		{model.DimCoverageAdequacy, e.scoreCoverageAdequacy},
		{model.DimAffordability, e.scoreAffordability},
	}
}

// Calculate always returns a complete assessment: a scorer that panics
// is substituted with the default moderate score and a warning, never
// aborting the other nine.
func (e *Engine) Calculate(ctx *model.RecommendationContext) model.RiskAssessment {
	var (
		dims     []model.RiskDimensionScore
		warnings []string
		all      []model.RiskFactor
		overall  float64
	)

	for _, s := range e.scorers() {
		res := e.safeScore(ctx, s)
		weight := dimensionWeights[s.dimension]
		for i := range res.factors {
			res.factors[i].Dimension = s.dimension
			res.factors[i].Weight = weight
		}
		res.score = clamp(res.score, 0, 100)
		dims = append(dims, model.RiskDimensionScore{
			Dimension: s.dimension,
			Score:     res.score,
			Category:  model.ScoreToCategory(int(res.score)),
			Weight:    weight,
			Factors:   res.factors,
		})
		warnings = append(warnings, res.warnings...)
		all = append(all, res.factors...)
		overall += res.score * weight
	}

	critical := criticalFactors(all)
	overall += float64(len(critical)) * criticalBoost
	overall = clamp(overall, 0, 100)

	category := model.ScoreToCategory(int(overall))
	assessment := model.RiskAssessment{
		OverallScore:        overall,
		Category:            category,
		CategoryDescription: categoryDescriptions[category],
		Dimensions:          dims,
		TopFactors:          topFactors(all),
		CriticalFactors:     critical,
		Alerts:              e.buildAlerts(ctx, critical),
		DataQualityWarnings: warnings,
	}
	assessment.DataCompleteness = completeness(ctx)
	assessment.Confidence = assessment.DataCompleteness * 0.9
	assessment.Summary = buildSummary(&assessment)
	assessment.KeyInsights = buildInsights(&assessment)
	return assessment
}

func (e *Engine) safeScore(ctx *model.RecommendationContext, s dimensionScorer) (res dimensionResult) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("dimension scorer failed, using default",
				zap.String("dimension", s.dimension),
				zap.Any("panic", r))
			res = dimensionResult{
				score:    defaultScore,
				warnings: []string{fmt.Sprintf("scorer for %s failed; defaulted to moderate", s.dimension)},
			}
		}
	}()
	return s.score(ctx)
}

func criticalFactors(all []model.RiskFactor) []model.RiskFactor {
	var critical []model.RiskFactor
	for _, f := range all {
		if f.IsCritical {
			critical = append(critical, f)
		}
	}
	return critical
}

func topFactors(all []model.RiskFactor) []model.RiskFactor {
	sorted := make([]model.RiskFactor, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeightedContribution() > sorted[j].WeightedContribution()
	})
	if len(sorted) > topFactorCount {
		sorted = sorted[:topFactorCount]
	}
	return sorted
}

func (e *Engine) buildAlerts(ctx *model.RecommendationContext, critical []model.RiskFactor) []model.Alert {
	var alerts []model.Alert
	n := 0
	nextID := func() string {
		n++
		return fmt.Sprintf("alert_%03d", n)
	}

	for _, f := range critical {
		alerts = append(alerts, model.Alert{
			AlertID:        nextID(),
			Severity:       model.SeverityCritical,
			Title:          fmt.Sprintf("Critical risk: %s", f.Dimension),
			Message:        f.Description,
			ActionRequired: true,
		})
	}

	for _, b := range ctx.OpenBills() {
		if d, ok := b.DaysUntilDue(ctx.AsOf); ok && d < 0 {
			alerts = append(alerts, model.Alert{
				AlertID:        nextID(),
				Severity:       model.SeverityWarning,
				Title:          "Past-due bill",
				Message:        fmt.Sprintf("Bill from %s is %d days past due ($%s)", b.Provider, -d, b.PatientBalance.StringFixed(2)),
				ActionRequired: true,
			})
		}
	}

	if ctx.Insurance != nil && ctx.Insurance.PlanYearEnd != nil {
		if end, ok := model.ParseDate(*ctx.Insurance.PlanYearEnd); ok {
			days := model.DaysBetween(ctx.AsOfDate(), end)
			if days >= 0 && days < planYearCautionDay {
				alerts = append(alerts, model.Alert{
					AlertID:  nextID(),
					Severity: model.SeverityCaution,
					Title:    "Plan year ending soon",
					Message:  fmt.Sprintf("Insurance plan year ends in %d days; deductible and out-of-pocket progress resets", days),
				})
			}
		}
	}
	return alerts
}

// completeness averages four data-presence scores. Uninsured is a valid
// state, not missing data, so absent insurance scores 0.5 rather than 0.3.
func completeness(ctx *model.RecommendationContext) float64 {
	score := func(present bool, yes, no float64) float64 {
		if present {
			return yes
		}
		return no
	}
	total := score(ctx.Income != nil, 0.9, 0.3) +
		score(ctx.Debt != nil, 0.9, 0.3) +
		score(ctx.Insurance != nil, 0.9, 0.5) +
		score(len(ctx.Bills) > 0, 0.9, 0.5)
	return total / 4
}

var categoryDescriptions = map[string]string{
	model.RiskMinimal:  "Finances are stable with no significant medical-financial exposure.",
	model.RiskLow:      "Minor exposure that routine attention can manage.",
	model.RiskModerate: "Meaningful exposure; acting on the recommendations below will reduce it.",
	model.RiskHigh:     "Serious exposure across multiple areas; prompt action is needed.",
	model.RiskCritical: "Severe exposure; immediate action is needed to avoid lasting financial harm.",
}

func buildSummary(a *model.RiskAssessment) string {
	s := fmt.Sprintf("Overall medical-financial risk is %s (%.0f/100). %s",
		a.Category, a.OverallScore, a.CategoryDescription)
	if n := len(a.CriticalFactors); n > 0 {
		s += fmt.Sprintf(" %d critical factor(s) require attention.", n)
	}
	return s
}

func buildInsights(a *model.RiskAssessment) []string {
	var insights []string

	var worst *model.RiskDimensionScore
	for i := range a.Dimensions {
		if worst == nil || a.Dimensions[i].Score > worst.Score {
			worst = &a.Dimensions[i]
		}
	}
	if worst != nil && worst.Score >= 60 {
		insights = append(insights, fmt.Sprintf("Highest risk area is %s at %.0f/100", worst.Dimension, worst.Score))
	}

	for _, f := range a.TopFactors {
		if len(insights) >= maxInsightCount {
			break
		}
		insights = append(insights, f.Description)
	}
	if len(insights) > maxInsightCount {
		insights = insights[:maxInsightCount]
	}
	return insights
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
