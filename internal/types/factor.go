package types

// FactorCalculation is one rubric category of the factor analysis. Score is
// the raw "earned/max" string as produced by the model, e.g. "15/20".
type FactorCalculation struct {
	Factor string `json:"factor"`
	Score  string `json:"score"`
}

// FactorResult is the qualitative factor analysis of a resume against a job:
// seven weighted rubric categories summing to 250 raw points, normalized by
// the model to a 0-100 final score.
type FactorResult struct {
	FinalScore       float64             `json:"final_score"`
	FinalExplanation string              `json:"final_score_explanation"`
	Calculations     []FactorCalculation `json:"calculations"`
}
