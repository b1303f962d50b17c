package model

// RiskFactor is one atomic contributor to risk within a dimension.
type RiskFactor struct {
	FactorID    string  `json:"factor_id"`
	Dimension   string  `json:"dimension"`
	Description string  `json:"description"`
	RawValue    string  `json:"raw_value,omitempty"`
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
	IsCritical  bool    `json:"is_critical"`
}

// WeightedContribution is score x weight, derived on demand.
func (f *RiskFactor) WeightedContribution() float64 {
	return f.Score * f.Weight
}

type RiskDimensionScore struct {
	Dimension string       `json:"dimension"`
	Score     float64      `json:"score"`
	Category  string       `json:"category"`
	Weight    float64      `json:"weight"`
	Factors   []RiskFactor `json:"factors"`
}

type Alert struct {
	AlertID        string `json:"alert_id"`
	Severity       string `json:"severity"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	ActionRequired bool   `json:"action_required"`
}

type RiskAssessment struct {
	OverallScore        float64              `json:"overall_score"`
	Category            string               `json:"category"`
	CategoryDescription string               `json:"category_description"`
	Summary             string               `json:"summary"`
	KeyInsights         []string             `json:"key_insights"`
	Dimensions          []RiskDimensionScore `json:"dimensions"`
	TopFactors          []RiskFactor         `json:"top_factors"`
	CriticalFactors     []RiskFactor         `json:"critical_factors"`
	Alerts              []Alert              `json:"alerts"`
	DataCompleteness    float64              `json:"data_completeness"`
	Confidence          float64              `json:"confidence"`
	DataQualityWarnings []string             `json:"data_quality_warnings"`
}

// Dimension returns the named dimension score, nil if absent.
func (a *RiskAssessment) Dimension(name string) *RiskDimensionScore {
	for i := range a.Dimensions {
		if a.Dimensions[i].Dimension == name {
			return &a.Dimensions[i]
		}
	}
	return nil
}
