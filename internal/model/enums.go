package model

// Risk categories, shared between dimension scores, the overall
// assessment, and recommendation urgency scoring.
const (
	RiskMinimal  = "minimal"
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// ScoreToCategory maps a 0-100 risk score to its category.
// Cut points: 80/60/40/20.
func ScoreToCategory(score int) string {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskModerate
	case score >= 20:
		return RiskLow
	default:
		return RiskMinimal
	}
}

// Risk dimensions.
const (
	DimIncomeStability     = "income_stability"
	DimDebtBurden          = "debt_burden"
	DimMedicalDebtRatio    = "medical_debt_ratio"
	DimUpcomingCosts       = "upcoming_costs"
	DimInsuranceGaps       = "insurance_gaps"
	DimBillErrors          = "bill_errors"
	DimPaymentHistory      = "payment_history"
	DimCollectionsExposure = "collections_exposure"
	DimCoverageAdequacy    = "coverage_adequacy"
	DimAffordability       = "affordability"
)

// Dimensions lists all risk dimensions in scoring order.
var Dimensions = []string{
	DimIncomeStability,
	DimDebtBurden,
	DimMedicalDebtRatio,
	DimUpcomingCosts,
	DimInsuranceGaps,
	DimBillErrors,
	DimPaymentHistory,
	DimCollectionsExposure,
	DimCoverageAdequacy,
	DimAffordability,
}

// Recommendation categories.
const (
	CategoryBillDispute           = "bill_dispute"
	CategoryInsuranceAppeal       = "insurance_appeal"
	CategoryAssistanceApplication = "assistance_application"
	CategoryNegotiation           = "negotiation"
	CategoryPaymentOptimization   = "payment_optimization"
	CategoryInsuranceOptimization = "insurance_optimization"
	CategoryDocumentRequest       = "document_request"
	CategoryVerification          = "verification"
)

// Recommendation priorities.
const (
	PriorityCritical      = "critical"
	PriorityHigh          = "high"
	PriorityMedium        = "medium"
	PriorityLow           = "low"
	PriorityInformational = "informational"
)

// Difficulty levels.
const (
	DifficultyTrivial     = "trivial"
	DifficultyEasy        = "easy"
	DifficultyModerate    = "moderate"
	DifficultyChallenging = "challenging"
	DifficultyComplex     = "complex"
)

// Success likelihood labels derived from the numeric probability.
const (
	LikelihoodVeryHigh  = "very_high"
	LikelihoodHigh      = "high"
	LikelihoodModerate  = "moderate"
	LikelihoodLow       = "low"
	LikelihoodUncertain = "uncertain"
)

// ProbabilityToLikelihood maps a success probability to its label.
func ProbabilityToLikelihood(p float64) string {
	switch {
	case p >= 0.80:
		return LikelihoodVeryHigh
	case p >= 0.60:
		return LikelihoodHigh
	case p >= 0.40:
		return LikelihoodModerate
	case p >= 0.20:
		return LikelihoodLow
	default:
		return LikelihoodUncertain
	}
}

// Alert severities.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityCaution  = "caution"
	SeverityInfo     = "info"
)

// Bill statuses.
const (
	BillPending     = "pending"
	BillDisputed    = "disputed"
	BillPaymentPlan = "payment_plan"
	BillPaid        = "paid"
	BillCollections = "collections"
)

// Coverage gap types.
const (
	GapClaimDenial  = "claim_denial"
	GapOutOfNetwork = "out_of_network"
	GapExclusion    = "exclusion"
)

// Analysis outcomes.
const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
