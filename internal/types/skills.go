// Package types defines the domain data model shared across the scoring pipeline.
package types

// ScoredSkill is one skill extracted either from a candidate's experience
// (cumulative weighted presence across years) or from a job's requirement
// list. Computed fresh per scoring run; never persisted on its own.
type ScoredSkill struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// SkillMatch is one candidate skill that fell within the distance threshold
// of a required skill.
type SkillMatch struct {
	CandidateSkill string  `json:"candidate_skill"`
	Score          float64 `json:"score"`
	Distance       float64 `json:"distance"`
}

// MatchingSkills maps a required skill name to its candidate matches.
// Required skills with zero matches are absent from the map; that is the
// documented contract, not an error.
type MatchingSkills map[string][]SkillMatch
