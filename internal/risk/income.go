package risk

import (
	"fmt"

	"medfin-engine/internal/model"
)

// scoreIncomeStability scores income risk from the federal-poverty-line
// percentage, falling back to the supplied stability score when FPL is
// absent. No income signal at all defaults to moderate.
func (e *Engine) scoreIncomeStability(ctx *model.RecommendationContext) dimensionResult {
	if fpl, ok := ctx.FPL(); ok {
		return scoreFromFPL(fpl)
	}

	if ctx.Income != nil && ctx.Income.StabilityScore != nil {
		stability := clamp(*ctx.Income.StabilityScore, 0, 1)
		score := (1 - stability) * 100
		var factors []model.RiskFactor
		if score >= 50 {
			factors = append(factors, model.RiskFactor{
				FactorID:    "INC_UNSTABLE",
				Description: "Income sources are unstable",
				RawValue:    fmt.Sprintf("stability=%.2f", stability),
				Score:       score,
			})
		}
		return dimensionResult{score: score, factors: factors}
	}

	return dimensionResult{
		score:    defaultScore,
		warnings: []string{"no income data; income stability defaulted to moderate"},
	}
}

func scoreFromFPL(fpl float64) dimensionResult {
	raw := fmt.Sprintf("fpl=%.0f%%", fpl)
	switch {
	case fpl < 100:
		return dimensionResult{score: 100, factors: []model.RiskFactor{{
			FactorID:    "INC_FPL_CRITICAL",
			Description: "Household income is below the federal poverty line",
			RawValue:    raw,
			Score:       100,
			IsCritical:  true,
		}}}
	case fpl < 200:
		return dimensionResult{score: 75, factors: []model.RiskFactor{{
			FactorID:    "INC_FPL_LOW",
			Description: "Household income is below 200% of the federal poverty line",
			RawValue:    raw,
			Score:       75,
		}}}
	case fpl < 400:
		return dimensionResult{score: 50, factors: []model.RiskFactor{{
			FactorID:    "INC_FPL_MODERATE",
			Description: "Household income is below 400% of the federal poverty line",
			RawValue:    raw,
			Score:       50,
		}}}
	default:
		// Decays with rising income, never above the <400% band.
		score := clamp(100-fpl/10, 0, 50)
		return dimensionResult{score: score}
	}
}
