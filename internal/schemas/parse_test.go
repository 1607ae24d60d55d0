package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResume(t *testing.T) {
	raw := `{
		"skills": [{"name": "Go", "score": 0.9}, {"name": "SQL", "score": 0.4}],
		"certification_skills": ["Kubernetes"],
		"experiences": [
			{"title": "Engineer", "organization": "Acme", "industry": "Fintech",
			 "start_date": "2020-01", "end_date": "2023-06"}
		],
		"overall_years": 5
	}`

	resume, err := ParseResume(raw)
	require.NoError(t, err)

	require.Len(t, resume.Skills, 2)
	assert.Equal(t, "Go", resume.Skills[0].Name)
	assert.Equal(t, 0.9, resume.Skills[0].Score)
	assert.Equal(t, []string{"Kubernetes"}, resume.CertificationSkills)
	require.Len(t, resume.Experiences, 1)
	assert.Equal(t, "Fintech", resume.Experiences[0].Industry)
	assert.Equal(t, 5.0, resume.OverallYears)
}

func TestParseResumeFoldsNullSentinels(t *testing.T) {
	// JSON null, the string "null", and a missing key all land on zero values.
	raw := `{
		"skills": [{"name": "Go", "score": 0.9}, {"name": "null", "score": 0.5}],
		"certification_skills": null,
		"experiences": [
			{"title": "Engineer", "organization": null, "industry": "null", "end_date": "null"}
		],
		"overall_years": "null"
	}`

	resume, err := ParseResume(raw)
	require.NoError(t, err)

	// The "null"-named skill is dropped rather than matched literally.
	require.Len(t, resume.Skills, 1)
	assert.Equal(t, "Go", resume.Skills[0].Name)
	assert.Nil(t, resume.CertificationSkills)
	require.Len(t, resume.Experiences, 1)
	assert.Empty(t, resume.Experiences[0].Organization)
	assert.Empty(t, resume.Experiences[0].Industry)
	assert.Empty(t, resume.Experiences[0].StartDate)
	assert.Empty(t, resume.Experiences[0].EndDate)
	assert.Zero(t, resume.OverallYears)
}

func TestParseResumeNumericStringYears(t *testing.T) {
	raw := `{
		"skills": [{"name": "Go", "score": 1}],
		"experiences": [{"title": "Engineer"}],
		"overall_years": "7.5"
	}`

	resume, err := ParseResume(raw)
	require.NoError(t, err)
	assert.Equal(t, 7.5, resume.OverallYears)
}

func TestParseResumeMissingRequiredFieldFails(t *testing.T) {
	_, err := ParseResume(`{"skills": []}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestParseResumeInvalidJSONFails(t *testing.T) {
	_, err := ParseResume(`not json`)
	assert.Error(t, err)
}

func TestParseJobDescription(t *testing.T) {
	raw := `{
		"required_skills": ["AWS", "Budgeting"],
		"job_title": "Finance Manager",
		"industries": ["Banking"],
		"overall_years": 4,
		"people_management": true,
		"software": ["Excel"]
	}`

	jd, err := ParseJobDescription(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"AWS", "Budgeting"}, jd.RequiredSkills)
	assert.Equal(t, "Finance Manager", jd.JobTitle)
	assert.Equal(t, 4, jd.OverallYears)
	assert.True(t, jd.PeopleManagement)
	assert.Equal(t, []string{"Excel"}, jd.Software)
}

func TestParseJobDescriptionNullFields(t *testing.T) {
	raw := `{
		"required_skills": ["Go", null, "null"],
		"job_title": "null",
		"industries": "Banking",
		"people_management": null,
		"software": null
	}`

	jd, err := ParseJobDescription(raw)
	require.NoError(t, err)

	// Null placeholders are dropped from lists; a bare string becomes a
	// one-element list.
	assert.Equal(t, []string{"Go"}, jd.RequiredSkills)
	assert.Empty(t, jd.JobTitle)
	assert.Equal(t, []string{"Banking"}, jd.Industries)
	assert.Zero(t, jd.OverallYears)
	assert.False(t, jd.PeopleManagement)
	assert.Nil(t, jd.Software)
}

func TestParseBasics(t *testing.T) {
	raw := `{
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"phone": null,
		"current_title": "Staff Engineer",
		"expected_salary": "120000",
		"experience_years": 12
	}`

	basics, err := ParseBasics(raw)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", basics.Name)
	assert.Equal(t, "ada@example.com", basics.Email)
	assert.Empty(t, basics.Phone)
	assert.Equal(t, 120000.0, basics.ExpectedSalary)
	assert.Equal(t, 12.0, basics.ExperienceYears)
}

func TestParseFactorResult(t *testing.T) {
	raw := `{
		"calculations": [
			{"factor": "Relevant Experience", "score": "55/70"},
			{"factor": "People Management Experience", "score": "20/20"}
		],
		"final_score": 82,
		"final_score_explanation": "Strong match."
	}`

	result, err := ParseFactorResult(raw)
	require.NoError(t, err)

	assert.Equal(t, 82.0, result.FinalScore)
	assert.Equal(t, "Strong match.", result.FinalExplanation)
	require.Len(t, result.Calculations, 2)
	assert.Equal(t, "20/20", result.Calculations[1].Score)
}

func TestParseFactorResultEmptyCalculationsFails(t *testing.T) {
	raw := `{"calculations": [], "final_score": 10, "final_score_explanation": "x"}`
	_, err := ParseFactorResult(raw)
	assert.Error(t, err)
}

func TestParseSummary(t *testing.T) {
	summary, err := ParseSummary(`{"summary": "Good fit overall."}`)
	require.NoError(t, err)
	assert.Equal(t, "Good fit overall.", summary)
}

func TestParseTitleMatchStrict(t *testing.T) {
	got, err := ParseTitleMatch(`{"result": true}`)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = ParseTitleMatch(`{"result": false}`)
	require.NoError(t, err)
	assert.False(t, got)

	// A non-boolean or missing result never defaults to false silently.
	_, err = ParseTitleMatch(`{"result": "yes"}`)
	assert.Error(t, err)
	_, err = ParseTitleMatch(`{}`)
	assert.Error(t, err)
}
