// Package scoring turns a candidate's raw skill-match score into the
// normalized percentage, bucket, and boolean signals persisted with it.
package scoring

import (
	"github.com/talentwire/candidate-scorer/internal/config"
)

// IdealScore computes the maximum achievable score for a job posting: each
// required skill contributes the sum of year weights over the posting's
// overall years of experience. Zero or negative years falls back to 1; that
// is a documented degenerate input, not an error. Pure and deterministic.
func IdealScore(requiredSkills []string, overallYears int, weightage *config.WeightageTable) (float64, map[string]float64) {
	if overallYears <= 0 {
		overallYears = 1
	}

	total := 0.0
	perSkill := make(map[string]float64, len(requiredSkills))
	for _, skill := range requiredSkills {
		cumulative := 0.0
		for year := 1; year <= overallYears; year++ {
			cumulative += weightage.Weight(year)
		}
		perSkill[skill] = cumulative
		total += cumulative
	}

	return total, perSkill
}
