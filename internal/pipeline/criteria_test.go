package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentwire/candidate-scorer/internal/types"
)

func TestParseFilteringCriteriaEmpty(t *testing.T) {
	criteria, err := ParseFilteringCriteria("")
	require.NoError(t, err)
	assert.Nil(t, criteria)

	criteria, err = ParseFilteringCriteria("   ")
	require.NoError(t, err)
	assert.Nil(t, criteria)
}

func TestParseFilteringCriteriaInvalid(t *testing.T) {
	_, err := ParseFilteringCriteria("{not json")
	assert.Error(t, err)
}

func TestEvaluateSalaryBounds(t *testing.T) {
	criteria := &FilteringCriteria{MinSalary: 50000, MaxSalary: 100000}

	reasons := criteria.Evaluate(&types.Basics{ExpectedSalary: 40000}, nil)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "below minimum")

	reasons = criteria.Evaluate(&types.Basics{ExpectedSalary: 120000}, nil)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "above maximum")

	assert.Empty(t, criteria.Evaluate(&types.Basics{ExpectedSalary: 75000}, nil))
}

func TestEvaluateSkipsUnextractedInputs(t *testing.T) {
	// Absence of evidence is not a disqualification.
	criteria := &FilteringCriteria{MinSalary: 50000, MinOverallYears: 5, MinAverageTenure: 2}

	assert.Empty(t, criteria.Evaluate(&types.Basics{}, &types.ParsedResume{}))
	assert.Empty(t, criteria.Evaluate(nil, nil))
}

func TestEvaluateExperienceThresholds(t *testing.T) {
	criteria := &FilteringCriteria{MinOverallYears: 5, MinAverageTenure: 2}
	resume := &types.ParsedResume{
		OverallYears: 4,
		Experiences: []types.Experience{
			{Title: "Engineer"}, {Title: "Analyst"}, {Title: "Intern"},
		},
	}

	reasons := criteria.Evaluate(nil, resume)

	// 4 years over 3 jobs fails both the overall and the tenure threshold.
	require.Len(t, reasons, 2)
	assert.Contains(t, reasons[0], "overall experience")
	assert.Contains(t, reasons[1], "average tenure")
}
