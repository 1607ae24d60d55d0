package types

// Experience is one entry of a candidate's work history, as extracted from
// the resume text.
type Experience struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Industry     string `json:"industry"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// ParsedResume is the strict-parsed form of the LLM resume extraction.
// All null sentinels ("null" string, JSON null, missing key) are folded into
// zero values at the parse boundary; downstream logic never re-checks them.
type ParsedResume struct {
	Skills              []ScoredSkill `json:"skills"`
	CertificationSkills []string      `json:"certification_skills"`
	Experiences         []Experience  `json:"experiences"`
	OverallYears        float64       `json:"overall_years"`
}

// ParsedJobDescription is the strict-parsed form of the JD extraction.
type ParsedJobDescription struct {
	RequiredSkills   []string `json:"required_skills"`
	JobTitle         string   `json:"job_title"`
	Industries       []string `json:"industries"`
	OverallYears     int      `json:"overall_years"`
	PeopleManagement bool     `json:"people_management"`
	Software         []string `json:"software"`
}

// Basics is the contact/profile extraction from a resume.
type Basics struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Location        string  `json:"location"`
	CurrentTitle    string  `json:"current_title"`
	ExpectedSalary  float64 `json:"expected_salary"`
	ExperienceYears float64 `json:"experience_years"`
}
