package recommend

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"medfin-engine/internal/billcheck"
	"medfin-engine/internal/model"
	"medfin-engine/internal/programcatalog"
)

// Generator produces candidate recommendations from a context and its
// risk assessment. Pure function of its inputs; no deduplication at
// this stage.
type Generator struct {
	checker *billcheck.Analyzer
	catalog *programcatalog.Catalog
}

func New(checker *billcheck.Analyzer, catalog *programcatalog.Catalog) *Generator {
	return &Generator{checker: checker, catalog: catalog}
}

type subGenerator struct {
	name     string
	generate func(*model.RecommendationContext, *model.RiskAssessment) []model.Recommendation
}

func (g *Generator) subGenerators() []subGenerator {
	return []subGenerator{
		{"billing", g.generateBilling},
		{"insurance", g.generateInsurance},
		{"assistance", g.generateAssistance},
		{"negotiation", g.generateNegotiation},
		{"payment", g.generatePayment},
		{"insurance_optimization", g.generateInsuranceOptimization},
		{"documents", g.generateDocumentRequests},
	}
}

// Generate runs every sub-generator and concatenates the results in a
// fixed order. A sub-generator that panics is skipped; the others still
// contribute.
func (g *Generator) Generate(ctx *model.RecommendationContext, assessment *model.RiskAssessment) []model.Recommendation {
	var recs []model.Recommendation
	for _, sub := range g.subGenerators() {
		recs = append(recs, g.safeGenerate(ctx, assessment, sub)...)
	}

	adjustSuccessProbabilities(recs, assessment.OverallScore)
	for i := range recs {
		recs[i].RecommendationID = fmt.Sprintf("rec_%03d", i+1)
		recs[i].SuccessLikelihood = model.ProbabilityToLikelihood(recs[i].SuccessProbability)
	}
	return recs
}

func (g *Generator) safeGenerate(ctx *model.RecommendationContext, assessment *model.RiskAssessment, sub subGenerator) (recs []model.Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("sub-generator failed, skipping category",
				zap.String("sub_generator", sub.name),
				zap.Any("panic", r))
			recs = nil
		}
	}()
	return sub.generate(ctx, assessment)
}

// adjustSuccessProbabilities scales success odds and savings confidence
// by ambient risk: lower overall risk means cleaner situations where
// interventions land more often. Both land in [0.10, 0.95].
func adjustSuccessProbabilities(recs []model.Recommendation, overallRisk float64) {
	factor := 0.9 + (1-overallRisk/200)*0.2
	for i := range recs {
		recs[i].SuccessProbability = clampProb(recs[i].SuccessProbability * factor)
		recs[i].Savings.Confidence = clampProb(recs[i].Savings.Confidence * factor)
	}
}

func clampProb(p float64) float64 {
	if p < 0.10 {
		return 0.10
	}
	if p > 0.95 {
		return 0.95
	}
	return p
}

// build instantiates a template. Savings order (min <= expected <= max,
// all >= 0) is enforced here so rules cannot emit an inverted range.
func build(key string, savings model.SavingsEstimate) model.Recommendation {
	tpl, ok := templates[key]
	if !ok {
		panic(fmt.Sprintf("unknown recommendation template %q", key))
	}

	savings = orderSavings(savings)

	steps := make([]model.ActionStep, len(tpl.Steps))
	for i, s := range tpl.Steps {
		steps[i] = model.ActionStep{Order: i + 1, Description: s}
	}
	if tpl.PhoneScript != "" && len(steps) > 0 {
		steps[len(steps)-1].PhoneScript = tpl.PhoneScript
	}

	docs := make([]model.DocumentRequirement, len(tpl.Documents))
	for i, d := range tpl.Documents {
		docs[i] = model.DocumentRequirement{Name: d}
	}

	return model.Recommendation{
		Category:           tpl.Category,
		Title:              tpl.Title,
		Description:        tpl.Description,
		Savings:            savings,
		Time:               timeEstimate(tpl.BaseMinutes),
		Difficulty:         tpl.Difficulty,
		SuccessProbability: tpl.SuccessProb,
		RiskReductionScore: tpl.RiskReduction,
		Steps:              steps,
		Documents:          docs,
		Tips:               tpl.Tips,
	}
}

func orderSavings(s model.SavingsEstimate) model.SavingsEstimate {
	floor := func(d decimal.Decimal) decimal.Decimal {
		if d.Sign() < 0 {
			return decimal.Zero
		}
		return d
	}
	s.Minimum = floor(s.Minimum)
	s.Expected = floor(s.Expected)
	s.Maximum = floor(s.Maximum)
	if s.Expected.LessThan(s.Minimum) {
		s.Expected = s.Minimum
	}
	if s.Maximum.LessThan(s.Expected) {
		s.Maximum = s.Expected
	}
	return s
}

func timeEstimate(baseMinutes int) model.TimeEstimate {
	return model.TimeEstimate{
		MinMinutes:      int(float64(baseMinutes) * 0.7),
		ExpectedMinutes: baseMinutes,
		MaxMinutes:      int(float64(baseMinutes) * 1.5),
	}
}

// derivePriority applies the uniform fallback rule for rules that do not
// hard-assign a priority.
func derivePriority(expected decimal.Decimal, deadlineDays *int) string {
	if expected.GreaterThan(decimal.NewFromInt(2000)) || (deadlineDays != nil && *deadlineDays < 7) {
		return model.PriorityHigh
	}
	if expected.GreaterThan(decimal.NewFromInt(500)) {
		return model.PriorityMedium
	}
	return model.PriorityLow
}

func pct(amount decimal.Decimal, fraction float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(fraction))
}
