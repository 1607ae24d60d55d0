package schemas

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/talentwire/candidate-scorer/internal/types"
)

// flexStr decodes a JSON string or null. The literal string "null" is folded
// into the empty string, so every null spelling the model uses lands on the
// same zero value.
type flexStr string

func (s *flexStr) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if strings.EqualFold(strings.TrimSpace(raw), "null") {
		*s = ""
		return nil
	}
	*s = flexStr(raw)
	return nil
}

// flexFloat decodes a JSON number, a numeric string, or null (as zero).
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = 0
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(n)
	return nil
}

// flexStrList decodes a JSON array of strings, a bare string, or null.
// Null entries and "null" placeholders are dropped.
type flexStrList []string

func (l *flexStrList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = nil
		return nil
	}
	var one flexStr
	if err := json.Unmarshal(b, &one); err == nil {
		if one != "" {
			*l = []string{string(one)}
		}
		return nil
	}
	var many []flexStr
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	out := make([]string, 0, len(many))
	for _, s := range many {
		if s != "" {
			out = append(out, string(s))
		}
	}
	*l = out
	return nil
}

// ParseResume validates and decodes the resume entity extraction.
func ParseResume(raw string) (*types.ParsedResume, error) {
	if err := validateAgainst(resumeSchema, raw); err != nil {
		return nil, err
	}

	var doc struct {
		Skills []struct {
			Name  flexStr   `json:"name"`
			Score flexFloat `json:"score"`
		} `json:"skills"`
		CertificationSkills flexStrList `json:"certification_skills"`
		Experiences         []struct {
			Title        flexStr `json:"title"`
			Organization flexStr `json:"organization"`
			Industry     flexStr `json:"industry"`
			StartDate    flexStr `json:"start_date"`
			EndDate      flexStr `json:"end_date"`
		} `json:"experiences"`
		OverallYears flexFloat `json:"overall_years"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ContractViolationError{Schema: "ResumeEntities", Message: "decode failed", Cause: err}
	}

	parsed := &types.ParsedResume{
		CertificationSkills: doc.CertificationSkills,
		OverallYears:        float64(doc.OverallYears),
	}
	for _, s := range doc.Skills {
		if s.Name == "" {
			continue
		}
		parsed.Skills = append(parsed.Skills, types.ScoredSkill{
			Name:  string(s.Name),
			Score: float64(s.Score),
		})
	}
	for _, e := range doc.Experiences {
		parsed.Experiences = append(parsed.Experiences, types.Experience{
			Title:        string(e.Title),
			Organization: string(e.Organization),
			Industry:     string(e.Industry),
			StartDate:    string(e.StartDate),
			EndDate:      string(e.EndDate),
		})
	}
	return parsed, nil
}

// ParseJobDescription validates and decodes the JD extraction.
func ParseJobDescription(raw string) (*types.ParsedJobDescription, error) {
	if err := validateAgainst(jobDescriptionSchema, raw); err != nil {
		return nil, err
	}

	var doc struct {
		RequiredSkills   flexStrList `json:"required_skills"`
		JobTitle         flexStr     `json:"job_title"`
		Industries       flexStrList `json:"industries"`
		OverallYears     flexFloat   `json:"overall_years"`
		PeopleManagement *bool       `json:"people_management"`
		Software         flexStrList `json:"software"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ContractViolationError{Schema: "JobDescription", Message: "decode failed", Cause: err}
	}

	parsed := &types.ParsedJobDescription{
		RequiredSkills: doc.RequiredSkills,
		JobTitle:       string(doc.JobTitle),
		Industries:     doc.Industries,
		OverallYears:   int(doc.OverallYears),
		Software:       doc.Software,
	}
	if doc.PeopleManagement != nil {
		parsed.PeopleManagement = *doc.PeopleManagement
	}
	return parsed, nil
}

// ParseBasics validates and decodes the resume basics extraction.
func ParseBasics(raw string) (*types.Basics, error) {
	if err := validateAgainst(basicsSchema, raw); err != nil {
		return nil, err
	}

	var doc struct {
		Name            flexStr   `json:"name"`
		Email           flexStr   `json:"email"`
		Phone           flexStr   `json:"phone"`
		Location        flexStr   `json:"location"`
		CurrentTitle    flexStr   `json:"current_title"`
		ExpectedSalary  flexFloat `json:"expected_salary"`
		ExperienceYears flexFloat `json:"experience_years"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ContractViolationError{Schema: "ResumeBasics", Message: "decode failed", Cause: err}
	}

	return &types.Basics{
		Name:            string(doc.Name),
		Email:           string(doc.Email),
		Phone:           string(doc.Phone),
		Location:        string(doc.Location),
		CurrentTitle:    string(doc.CurrentTitle),
		ExpectedSalary:  float64(doc.ExpectedSalary),
		ExperienceYears: float64(doc.ExperienceYears),
	}, nil
}

// ParseFactorResult validates and decodes the factor analysis response.
func ParseFactorResult(raw string) (*types.FactorResult, error) {
	if err := validateAgainst(factorSchema, raw); err != nil {
		return nil, err
	}

	var doc struct {
		Calculations []struct {
			Factor flexStr `json:"factor"`
			Score  flexStr `json:"score"`
		} `json:"calculations"`
		FinalScore       flexFloat `json:"final_score"`
		FinalExplanation string    `json:"final_score_explanation"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ContractViolationError{Schema: "FactorAnalysis", Message: "decode failed", Cause: err}
	}

	result := &types.FactorResult{
		FinalScore:       float64(doc.FinalScore),
		FinalExplanation: doc.FinalExplanation,
	}
	for _, c := range doc.Calculations {
		result.Calculations = append(result.Calculations, types.FactorCalculation{
			Factor: string(c.Factor),
			Score:  string(c.Score),
		})
	}
	return result, nil
}

// ParseSummary validates and decodes the match-summary response.
func ParseSummary(raw string) (string, error) {
	if err := validateAgainst(summarySchema, raw); err != nil {
		return "", err
	}

	var doc struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return "", &ContractViolationError{Schema: "MatchSummary", Message: "decode failed", Cause: err}
	}
	return doc.Summary, nil
}

// ParseTitleMatch validates and decodes the boolean title-match judgment.
// A missing or malformed "result" key fails loudly rather than defaulting to
// false: a silently-wrong boolean would poison the persisted score.
func ParseTitleMatch(raw string) (bool, error) {
	if err := validateAgainst(titleMatchSchema, raw); err != nil {
		return false, err
	}

	var doc struct {
		Result bool `json:"result"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return false, &ContractViolationError{Schema: "TitleMatch", Message: "decode failed", Cause: err}
	}
	return doc.Result, nil
}
