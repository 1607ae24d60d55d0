package types

// Bucket is the letter grade summarizing a candidate's quantitative skill
// match percentage.
type Bucket string

// Bucket grades, best to worst.
const (
	BucketA Bucket = "A"
	BucketB Bucket = "B"
	BucketC Bucket = "C"
	BucketD Bucket = "D"
	BucketE Bucket = "E"
)

// CandidateScore is the persisted aggregate for one candidate against one
// job. Subsequent scoring runs upsert the same logical row keyed by
// (company_id, job_application_id).
type CandidateScore struct {
	CompanyID        int64          `json:"company_id"`
	JobApplicationID int64          `json:"job_application_id"`
	Bucket           Bucket         `json:"bucket"`
	RawMatchScore    float64        `json:"raw_match_score"`
	MatchPercent     float64        `json:"match_percent"`
	Learnability     bool           `json:"learnability"`
	IndustryMatch    bool           `json:"industry_match"`
	TitleMatch       bool           `json:"title_match"`
	MatchingSkills   MatchingSkills `json:"matching_skills"`

	FactorScore       float64 `json:"factor_score"`
	FactorExplanation string  `json:"factor_explanation"`
	FactorCalculation string  `json:"factor_calculation"`
	FactorSummary     string  `json:"factor_summary"`
}
