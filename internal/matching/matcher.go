// Package matching finds candidate skills that satisfy a job's required
// skills using embedding distance, and aggregates them into a single raw
// match score under a deterministic assignment policy.
package matching

import (
	"context"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/talentwire/candidate-scorer/internal/embeddings"
	"github.com/talentwire/candidate-scorer/internal/types"
)

// Matcher compares candidate skills against job requirements.
type Matcher struct {
	cache     *embeddings.Cache
	threshold float64
	logger    *zap.Logger
}

// NewMatcher constructs a Matcher. threshold is the cosine distance below
// which a candidate/required pair counts as a match; it comes from
// configuration, never hard-coded here.
func NewMatcher(cache *embeddings.Cache, threshold float64, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{cache: cache, threshold: threshold, logger: logger}
}

// MatchSkills returns, for every required skill with at least one candidate
// match under the threshold, the list of matching candidate skills. Required
// skills with zero matches are absent from the result; that is the documented
// contract. A skill whose embedding cannot be resolved is unmatchable for
// this run, not a crash.
func (m *Matcher) MatchSkills(ctx context.Context, candidateSkills []types.ScoredSkill, requiredSkills []string) (types.MatchingSkills, error) {
	candidateVectors := make(map[string][]float64, len(candidateSkills))
	for _, cs := range candidateSkills {
		vector, err := m.cache.Resolve(ctx, cs.Name)
		if err != nil {
			m.logger.Warn("candidate skill has no embedding, skipping",
				zap.String("skill", cs.Name), zap.Error(err))
			continue
		}
		candidateVectors[cs.Name] = vector
	}

	matching := make(types.MatchingSkills)
	for _, required := range requiredSkills {
		reqVector, err := m.cache.Resolve(ctx, required)
		if err != nil {
			m.logger.Warn("required skill has no embedding, treating as unmatched",
				zap.String("skill", required), zap.Error(err))
			continue
		}

		var matches []types.SkillMatch
		for _, cs := range candidateSkills {
			vector, ok := candidateVectors[cs.Name]
			if !ok {
				continue
			}
			distance := embeddings.CosineDistance(reqVector, vector)
			if distance < m.threshold {
				matches = append(matches, types.SkillMatch{
					CandidateSkill: lower(cs.Name),
					Score:          cs.Score,
					Distance:       round2(distance),
				})
			}
		}

		if len(matches) > 0 {
			matching[lower(required)] = matches
		} else {
			m.logger.Debug("no matching skills for requirement", zap.String("skill", required))
		}
	}

	return matching, nil
}

// AggregateScore assigns one candidate skill to each matched requirement and
// sums the assigned scores. Requirements are processed in requiredSkills
// order. A requirement with one match takes it; with several, the best
// not-yet-used candidate wins, ranked by (score desc, distance asc). When
// every match is already used the best-ranked one is reused so the
// requirement still scores. Returns the total and the assignment.
func (m *Matcher) AggregateScore(matching types.MatchingSkills, requiredSkills []string) (float64, map[string]string) {
	total := 0.0
	assigned := make(map[string]string)
	used := make(map[string]bool)

	for _, required := range requiredSkills {
		key := lower(required)
		matches, ok := matching[key]
		if !ok {
			continue
		}

		if len(matches) == 1 {
			assigned[key] = matches[0].CandidateSkill
			used[matches[0].CandidateSkill] = true
			total += matches[0].Score
			continue
		}

		selected := selectNextSkill(matches, used)
		assigned[key] = selected.CandidateSkill
		used[selected.CandidateSkill] = true
		total += selected.Score
	}

	return total, assigned
}

// selectNextSkill picks the best-ranked match whose candidate skill is not
// yet used; if all are used, it falls back to the best-ranked one regardless.
func selectNextSkill(matches []types.SkillMatch, used map[string]bool) types.SkillMatch {
	ranked := make([]types.SkillMatch, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Distance < ranked[j].Distance
	})

	for _, match := range ranked {
		if !used[match.CandidateSkill] {
			return match
		}
	}
	return ranked[0]
}

// Learnability reports whether any certification skill falls within the
// distance threshold of any required skill. This is an existence check, not
// an assignment; the first hit wins.
func (m *Matcher) Learnability(ctx context.Context, certificationSkills, requiredSkills []string) (bool, error) {
	if len(certificationSkills) == 0 || len(requiredSkills) == 0 {
		return false, nil
	}

	requiredVectors := make([][]float64, 0, len(requiredSkills))
	for _, required := range requiredSkills {
		vector, err := m.cache.Resolve(ctx, required)
		if err != nil {
			m.logger.Warn("required skill has no embedding, skipping for learnability",
				zap.String("skill", required), zap.Error(err))
			continue
		}
		requiredVectors = append(requiredVectors, vector)
	}

	for _, cert := range certificationSkills {
		certVector, err := m.cache.Resolve(ctx, cert)
		if err != nil {
			m.logger.Warn("certification skill has no embedding, skipping",
				zap.String("skill", cert), zap.Error(err))
			continue
		}
		for _, reqVector := range requiredVectors {
			if embeddings.CosineDistance(certVector, reqVector) < m.threshold {
				return true, nil
			}
		}
	}
	return false, nil
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
