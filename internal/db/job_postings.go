package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetJobPosting retrieves a posting by company and client job ID.
// Returns (nil, nil) when no row exists; absence is for the caller to judge.
func (db *DB) GetJobPosting(ctx context.Context, companyID int64, clientJobID string) (*JobPosting, error) {
	var posting JobPosting
	err := db.pool.QueryRow(ctx,
		`SELECT id, company_id, client_job_id, extracted_text, parsed_jd, ideal_score,
		        COALESCE(filtering_criteria, ''), created_at
		 FROM job_postings WHERE company_id = $1 AND client_job_id = $2`,
		companyID, clientJobID,
	).Scan(&posting.ID, &posting.CompanyID, &posting.ClientJobID, &posting.ExtractedText,
		&posting.ParsedJD, &posting.IdealScore, &posting.FilteringCriteria, &posting.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return &posting, nil
}

// UpsertJobPosting inserts or replaces a posting keyed by
// (company_id, client_job_id) and returns its row ID.
func (db *DB) UpsertJobPosting(ctx context.Context, posting *JobPosting) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (company_id, client_job_id, extracted_text, parsed_jd, ideal_score, filtering_criteria)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		 ON CONFLICT (company_id, client_job_id)
		 DO UPDATE SET extracted_text = $3, parsed_jd = $4, ideal_score = $5,
		               filtering_criteria = NULLIF($6, ''), created_at = NOW()
		 RETURNING id`,
		posting.CompanyID, posting.ClientJobID, posting.ExtractedText,
		posting.ParsedJD, posting.IdealScore, posting.FilteringCriteria,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert job posting: %w", err)
	}
	return id, nil
}
