package model

import "github.com/shopspring/decimal"

// SavingsEstimate is a min/expected/max dollar range with a confidence.
// Invariant: 0 <= minimum <= expected <= maximum.
type SavingsEstimate struct {
	Minimum    decimal.Decimal `json:"minimum"`
	Expected   decimal.Decimal `json:"expected"`
	Maximum    decimal.Decimal `json:"maximum"`
	Confidence float64         `json:"confidence"`
}

type TimeEstimate struct {
	MinMinutes      int `json:"min_minutes"`
	ExpectedMinutes int `json:"expected_minutes"`
	MaxMinutes      int `json:"max_minutes"`
}

type ActionStep struct {
	Order       int    `json:"order"`
	Description string `json:"description"`
	PhoneScript string `json:"phone_script,omitempty"`
}

type DocumentRequirement struct {
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

type Recommendation struct {
	RecommendationID   string                `json:"recommendation_id"`
	Category           string                `json:"category"`
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	Priority           string                `json:"priority"`
	Savings            SavingsEstimate       `json:"savings_estimate"`
	Time               TimeEstimate          `json:"time_estimate"`
	Difficulty         string                `json:"difficulty"`
	SuccessProbability float64               `json:"success_probability"`
	SuccessLikelihood  string                `json:"success_likelihood"`
	RiskReductionScore float64               `json:"risk_reduction_score"`
	Steps              []ActionStep          `json:"steps,omitempty"`
	Documents          []DocumentRequirement `json:"documents,omitempty"`
	Tips               []string              `json:"tips,omitempty"`
	Deadline           *string               `json:"deadline"`
	TargetBillID       string                `json:"target_bill_id,omitempty"`
	TargetProvider     string                `json:"target_provider,omitempty"`
	TargetAmount       *decimal.Decimal      `json:"target_amount,omitempty"`
	CompositeScore     float64               `json:"composite_score"`
}

// DaysUntilDeadline returns the signed day count from asOf to the
// recommendation's deadline; false when there is none.
func (r *Recommendation) DaysUntilDeadline(asOf string) (int, bool) {
	if r.Deadline == nil {
		return 0, false
	}
	due, ok := ParseDate(*r.Deadline)
	if !ok {
		return 0, false
	}
	ref, ok := ParseDate(asOf)
	if !ok {
		return 0, false
	}
	return DaysBetween(ref, due), true
}

// RankingFactors holds the five 0-100 sub-scores behind a ranking.
type RankingFactors struct {
	Urgency       float64 `json:"urgency"`
	SavingsImpact float64 `json:"savings_impact"`
	Success       float64 `json:"success"`
	RiskReduction float64 `json:"risk_reduction"`
	Ease          float64 `json:"ease"`
}

// RankWeights weights the five sub-scores; must sum to 1.0.
type RankWeights struct {
	Urgency       float64 `json:"urgency"`
	SavingsImpact float64 `json:"savings_impact"`
	Success       float64 `json:"success"`
	RiskReduction float64 `json:"risk_reduction"`
	Ease          float64 `json:"ease"`
}

// Composite combines the sub-scores under the given weights.
func (f *RankingFactors) Composite(w RankWeights) float64 {
	return f.Urgency*w.Urgency +
		f.SavingsImpact*w.SavingsImpact +
		f.Success*w.Success +
		f.RiskReduction*w.RiskReduction +
		f.Ease*w.Ease
}

type RankedRecommendation struct {
	Recommendation Recommendation `json:"recommendation"`
	Factors        RankingFactors `json:"ranking_factors"`
	CompositeScore float64        `json:"composite_score"`
	FinalRank      int            `json:"final_rank"`
	Rationale      string         `json:"rationale"`
}
