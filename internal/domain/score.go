package domain

import "time"

// AsymmetryScore is the output of scoring one CompanyRecord: four factor
// scores in [0,10], a weighted-mean total rounded to one decimal, and one
// human-readable rationale string per factor.
type AsymmetryScore struct {
	FounderConviction float64 `json:"founder_conviction"`
	AIDisruption      float64 `json:"ai_disruption"`
	WhiteSpace        float64 `json:"white_space"`
	Asymmetry         float64 `json:"asymmetry"`

	Total float64 `json:"total"`

	Rationale ScoreRationale `json:"rationale"`

	ComputedAt time.Time `json:"computed_at"`
}

// ScoreRationale carries the triggered-condition descriptions per factor.
// A factor with no triggered branches holds that factor's fixed
// insufficient-data sentinel.
type ScoreRationale struct {
	FounderConviction string `json:"founder_conviction"`
	AIDisruption      string `json:"ai_disruption"`
	WhiteSpace        string `json:"white_space"`
	Asymmetry         string `json:"asymmetry"`
}
