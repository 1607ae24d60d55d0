package db

import (
	"time"

	"github.com/google/uuid"
)

// JobPosting is one ingested job posting row. ParsedJD holds the raw JSON of
// the JD entity extraction; IdealScore is precomputed at posting-ingestion
// time and used as the normalization denominator for every applicant.
type JobPosting struct {
	ID                int64
	CompanyID         int64
	ClientJobID       string
	ExtractedText     string
	ParsedJD          string
	IdealScore        float64
	FilteringCriteria string
	CreatedAt         time.Time
}

// JobApplication is one candidate submission against a job posting.
type JobApplication struct {
	ID                  int64
	CompanyID           int64
	ClientApplicationID string
	ClientJobID         string
	ResumeURL           string
	Status              string
	ExtractedText       string
	ParsedResume        string
	Basics              string
	CreatedAt           time.Time
}

// Task is the background scoring-run status row.
type Task struct {
	ID        uuid.UUID
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
