// Package factor post-processes the LLM factor analysis, removing rubric
// categories the job description does not actually require.
package factor

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/talentwire/candidate-scorer/internal/schemas"
	"github.com/talentwire/candidate-scorer/internal/types"
)

// Rubric category names matched by substring against the factor analysis
// calculations. Each raw category point converts to final-score points by
// dividing by 2.50 (250-point rubric scaled to 100).
const (
	categoryPeopleManagement = "People Management Experience"
	categoryProgramming      = "Programming Languages and Software"

	rawToFinalDivisor = 2.50
)

// Adjust subtracts unrequired rubric categories from the factor result's
// final score, in place, and returns it. People management is subtracted when
// the JD does not require it; programming languages when the JD lists no
// software. Both adjustments are independent and may both apply. A missing
// category or an unparseable "earned/max" score is a fatal contract
// violation: skipping it silently would persist a silently-wrong score.
func Adjust(result *types.FactorResult, jd *types.ParsedJobDescription, logger *zap.Logger) (*types.FactorResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !jd.PeopleManagement {
		deduction, err := categoryContribution(result.Calculations, categoryPeopleManagement)
		if err != nil {
			return nil, err
		}
		result.FinalScore -= deduction
		logger.Debug("subtracted people management category",
			zap.Float64("deduction", deduction),
			zap.Float64("final_score", result.FinalScore))
	}

	if len(jd.Software) == 0 {
		deduction, err := categoryContribution(result.Calculations, categoryProgramming)
		if err != nil {
			return nil, err
		}
		result.FinalScore -= deduction
		logger.Debug("subtracted programming languages category",
			zap.Float64("deduction", deduction),
			zap.Float64("final_score", result.FinalScore))
	}

	return result, nil
}

// categoryContribution finds the calculation whose factor name contains
// category, parses its "earned/max" score and returns its contribution on the
// 0-100 final-score scale.
func categoryContribution(calculations []types.FactorCalculation, category string) (float64, error) {
	for _, calc := range calculations {
		if !strings.Contains(calc.Factor, category) {
			continue
		}

		parts := strings.SplitN(calc.Score, "/", 2)
		if len(parts) != 2 {
			return 0, &schemas.ContractViolationError{
				Schema:  "FactorAnalysis",
				Message: "category " + category + " score " + strconv.Quote(calc.Score) + " is not earned/max",
			}
		}

		earned, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return 0, &schemas.ContractViolationError{
				Schema:  "FactorAnalysis",
				Message: "category " + category + " has non-numeric earned score",
				Cause:   err,
			}
		}

		return earned / rawToFinalDivisor, nil
	}

	return 0, &schemas.ContractViolationError{
		Schema:  "FactorAnalysis",
		Message: "category " + category + " missing from calculations",
	}
}
