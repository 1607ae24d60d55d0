package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UpsertJobApplication inserts or replaces an application keyed by
// (company_id, client_application_id) and returns its row ID. A re-score of
// the same application replaces its previous extraction state.
func (db *DB) UpsertJobApplication(ctx context.Context, app *JobApplication) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_applications (company_id, client_application_id, client_job_id, resume_url, status)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (company_id, client_application_id)
		 DO UPDATE SET client_job_id = $3, resume_url = $4, status = $5,
		               extracted_text = NULL, parsed_resume = NULL, basics = NULL, created_at = NOW()
		 RETURNING id`,
		app.CompanyID, app.ClientApplicationID, app.ClientJobID, app.ResumeURL, app.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert job application: %w", err)
	}
	return id, nil
}

// GetJobApplication retrieves an application by company and client
// application ID. Returns (nil, nil) when no row exists.
func (db *DB) GetJobApplication(ctx context.Context, companyID int64, clientApplicationID string) (*JobApplication, error) {
	var app JobApplication
	err := db.pool.QueryRow(ctx,
		`SELECT id, company_id, client_application_id, client_job_id, resume_url, status,
		        COALESCE(extracted_text, ''), COALESCE(parsed_resume, ''), COALESCE(basics, ''), created_at
		 FROM job_applications WHERE company_id = $1 AND client_application_id = $2`,
		companyID, clientApplicationID,
	).Scan(&app.ID, &app.CompanyID, &app.ClientApplicationID, &app.ClientJobID, &app.ResumeURL,
		&app.Status, &app.ExtractedText, &app.ParsedResume, &app.Basics, &app.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job application: %w", err)
	}
	return &app, nil
}

// UpdateJobApplicationStatus sets the application's processing status.
func (db *DB) UpdateJobApplicationStatus(ctx context.Context, applicationID int64, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET status = $1 WHERE id = $2`,
		status, applicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job application status: %w", err)
	}
	return nil
}

// UpdateJobApplicationEntities stores the extracted text and parsed resume
// entity JSON after entity extraction.
func (db *DB) UpdateJobApplicationEntities(ctx context.Context, applicationID int64, extractedText, parsedResume, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET extracted_text = $1, parsed_resume = $2, status = $3 WHERE id = $4`,
		extractedText, parsedResume, status, applicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job application entities: %w", err)
	}
	return nil
}

// UpdateJobApplicationBasics stores the basics extraction JSON.
func (db *DB) UpdateJobApplicationBasics(ctx context.Context, applicationID int64, basicsJSON string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET basics = $1 WHERE id = $2`,
		basicsJSON, applicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job application basics: %w", err)
	}
	return nil
}
