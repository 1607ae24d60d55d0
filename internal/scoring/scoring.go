package scoring

import (
	"math"
	"strings"

	"github.com/talentwire/candidate-scorer/internal/types"
)

// MatchPercent normalizes a raw match score against the job's ideal score,
// rounded to two decimal places. A zero ideal score yields 0, never a
// division panic.
func MatchPercent(rawScore, idealScore float64) float64 {
	if idealScore == 0 {
		return 0
	}
	return math.Round(rawScore/idealScore*100*100) / 100
}

// BucketFor assigns the letter bucket for a match percentage. Boundaries are
// closed on the lower edge: 90 is an A, 89.99 a B.
func BucketFor(matchPercent float64) types.Bucket {
	switch {
	case matchPercent >= 90:
		return types.BucketA
	case matchPercent >= 75:
		return types.BucketB
	case matchPercent >= 60:
		return types.BucketC
	case matchPercent >= 40:
		return types.BucketD
	default:
		return types.BucketE
	}
}

// IndustryMatch reports whether any of the candidate's most recent
// experiences (callers pass at most the configured window, default 3) has an
// industry in the job's preferred-industry set, case-insensitively. Either
// side empty means no match.
func IndustryMatch(experiences []types.Experience, jobIndustries []string) bool {
	if len(experiences) == 0 || len(jobIndustries) == 0 {
		return false
	}

	industrySet := make(map[string]bool, len(jobIndustries))
	for _, industry := range jobIndustries {
		industry = strings.ToLower(strings.TrimSpace(industry))
		if industry != "" {
			industrySet[industry] = true
		}
	}

	for _, exp := range experiences {
		if exp.Industry == "" {
			continue
		}
		if industrySet[strings.ToLower(strings.TrimSpace(exp.Industry))] {
			return true
		}
	}
	return false
}
