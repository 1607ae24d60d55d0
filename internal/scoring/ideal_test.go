package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentwire/candidate-scorer/internal/config"
)

func testWeightage(t *testing.T) *config.WeightageTable {
	t.Helper()
	table, err := config.NewWeightageTable(map[string]float64{
		"1": 1.0, "2": 0.8, "3": 0.6, "max": 1.0,
	})
	require.NoError(t, err)
	return table
}

func TestIdealScore(t *testing.T) {
	table := testWeightage(t)

	total, perSkill := IdealScore([]string{"Go", "SQL"}, 3, table)

	// Each skill accumulates 1.0 + 0.8 + 0.6 over three years.
	assert.InDelta(t, 4.8, total, 1e-9)
	assert.InDelta(t, 2.4, perSkill["Go"], 1e-9)
	assert.InDelta(t, 2.4, perSkill["SQL"], 1e-9)
}

func TestIdealScoreZeroYearsFallsBackToOne(t *testing.T) {
	table := testWeightage(t)

	zeroTotal, _ := IdealScore([]string{"Go"}, 0, table)
	oneTotal, _ := IdealScore([]string{"Go"}, 1, table)

	assert.Equal(t, oneTotal, zeroTotal)
	assert.InDelta(t, 1.0, zeroTotal, 1e-9)
}

func TestIdealScoreYearsBeyondTableDefaultToOne(t *testing.T) {
	table := testWeightage(t)

	total, _ := IdealScore([]string{"Go"}, 5, table)

	// Years 4 and 5 are absent from the table and weigh 1 each.
	assert.InDelta(t, 4.4, total, 1e-9)
}

func TestIdealScoreNoRequiredSkills(t *testing.T) {
	table := testWeightage(t)

	total, perSkill := IdealScore(nil, 3, table)

	assert.Zero(t, total)
	assert.Empty(t, perSkill)
}
