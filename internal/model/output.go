package model

type ActionPlan struct {
	Immediate []RankedRecommendation `json:"immediate"`
	ThisWeek  []RankedRecommendation `json:"this_week"`
	ThisMonth []RankedRecommendation `json:"this_month"`
	Ongoing   []RankedRecommendation `json:"ongoing"`
}

type AnalysisMetadata struct {
	AnalysisID          string `json:"analysis_id"`
	AnalysisStartedAt   string `json:"analysis_started_at"`
	AnalysisCompletedAt string `json:"analysis_completed_at"`
	AnalysisDurationMs  int64  `json:"analysis_duration_ms"`
	AnalysisOutcome     string `json:"analysis_outcome"`
}

type EngineOutput struct {
	AnalysisMetadata      AnalysisMetadata       `json:"analysis_metadata"`
	RiskAssessment        RiskAssessment         `json:"risk_assessment"`
	Recommendations       []RankedRecommendation `json:"recommendations"`
	ActionPlan            ActionPlan             `json:"action_plan"`
	TotalSavings          SavingsEstimate        `json:"total_savings"`
	RiskReductionEstimate float64                `json:"risk_reduction_estimate"`
	ExecutiveSummary      string                 `json:"executive_summary"`
	KeyTakeaways          []string               `json:"key_takeaways"`
	Limitations           []string               `json:"limitations"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
