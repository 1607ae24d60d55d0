package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talentwire/candidate-scorer/internal/types"
)

// UpsertCandidateScore inserts or replaces the score row keyed by
// (company_id, job_application_id). Every scoring run produces exactly one
// logical row per application.
func (db *DB) UpsertCandidateScore(ctx context.Context, score *types.CandidateScore) error {
	matchingSkills, err := json.Marshal(score.MatchingSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal matching skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidate_scores
		   (company_id, job_application_id, bucket, raw_match_score, match_percent,
		    learnability, industry_match, title_match, matching_skills,
		    factor_score, factor_explanation, factor_calculation, factor_summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (company_id, job_application_id)
		 DO UPDATE SET bucket = $3, raw_match_score = $4, match_percent = $5,
		               learnability = $6, industry_match = $7, title_match = $8,
		               matching_skills = $9, factor_score = $10, factor_explanation = $11,
		               factor_calculation = $12, factor_summary = $13, created_at = NOW()`,
		score.CompanyID, score.JobApplicationID, string(score.Bucket), score.RawMatchScore,
		score.MatchPercent, score.Learnability, score.IndustryMatch, score.TitleMatch,
		matchingSkills, score.FactorScore, score.FactorExplanation,
		score.FactorCalculation, score.FactorSummary,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert candidate score: %w", err)
	}
	return nil
}

// GetCandidateScore retrieves the score row for an application.
// Returns (nil, nil) when the application has not been scored.
func (db *DB) GetCandidateScore(ctx context.Context, companyID, jobApplicationID int64) (*types.CandidateScore, error) {
	var score types.CandidateScore
	var bucket string
	var matchingSkills []byte

	err := db.pool.QueryRow(ctx,
		`SELECT company_id, job_application_id, bucket, raw_match_score, match_percent,
		        learnability, industry_match, title_match, matching_skills,
		        factor_score, COALESCE(factor_explanation, ''), COALESCE(factor_calculation, ''),
		        COALESCE(factor_summary, '')
		 FROM candidate_scores WHERE company_id = $1 AND job_application_id = $2`,
		companyID, jobApplicationID,
	).Scan(&score.CompanyID, &score.JobApplicationID, &bucket, &score.RawMatchScore,
		&score.MatchPercent, &score.Learnability, &score.IndustryMatch, &score.TitleMatch,
		&matchingSkills, &score.FactorScore, &score.FactorExplanation,
		&score.FactorCalculation, &score.FactorSummary)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate score: %w", err)
	}

	score.Bucket = types.Bucket(bucket)
	if len(matchingSkills) > 0 {
		if err := json.Unmarshal(matchingSkills, &score.MatchingSkills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matching skills: %w", err)
		}
	}
	return &score, nil
}
