package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/talentwire/candidate-scorer/internal/types"
)

// FilteringCriteria are the hard screening thresholds a job posting may carry.
// They gate the front-end presentation only; the persisted score is computed
// and stored regardless of the verdict. A zero field means the criterion is
// not set.
type FilteringCriteria struct {
	MinSalary        float64 `json:"min_salary"`
	MaxSalary        float64 `json:"max_salary"`
	MinOverallYears  float64 `json:"min_overall_years"`
	MinAverageTenure float64 `json:"min_average_tenure"`
}

// ParseFilteringCriteria decodes the posting's criteria JSON. Empty input
// means the posting has no hard criteria and returns (nil, nil).
func ParseFilteringCriteria(raw string) (*FilteringCriteria, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var criteria FilteringCriteria
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return nil, fmt.Errorf("failed to parse filtering criteria: %w", err)
	}
	return &criteria, nil
}

// Evaluate checks the candidate against every set criterion and returns one
// reason per failure. An empty result means the candidate passes. Criteria
// whose inputs were not extracted (zero salary, zero years) are skipped
// rather than failed: absence of evidence is not a disqualification.
func (c *FilteringCriteria) Evaluate(basics *types.Basics, resume *types.ParsedResume) []string {
	var reasons []string

	if basics != nil && basics.ExpectedSalary > 0 {
		if c.MinSalary > 0 && basics.ExpectedSalary < c.MinSalary {
			reasons = append(reasons, fmt.Sprintf("expected salary %.0f below minimum %.0f", basics.ExpectedSalary, c.MinSalary))
		}
		if c.MaxSalary > 0 && basics.ExpectedSalary > c.MaxSalary {
			reasons = append(reasons, fmt.Sprintf("expected salary %.0f above maximum %.0f", basics.ExpectedSalary, c.MaxSalary))
		}
	}

	if c.MinOverallYears > 0 && resume != nil && resume.OverallYears > 0 &&
		resume.OverallYears < c.MinOverallYears {
		reasons = append(reasons, fmt.Sprintf("overall experience %.1f years below minimum %.1f", resume.OverallYears, c.MinOverallYears))
	}

	if c.MinAverageTenure > 0 && resume != nil && len(resume.Experiences) > 0 && resume.OverallYears > 0 {
		tenure := resume.OverallYears / float64(len(resume.Experiences))
		if tenure < c.MinAverageTenure {
			reasons = append(reasons, fmt.Sprintf("average tenure %.1f years below minimum %.1f", tenure, c.MinAverageTenure))
		}
	}

	return reasons
}

func joinReasons(reasons []string) string {
	return strings.Join(reasons, "; ")
}
