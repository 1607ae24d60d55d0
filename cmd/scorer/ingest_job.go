package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talentwire/candidate-scorer/internal/db"
	"github.com/talentwire/candidate-scorer/internal/extraction"
	"github.com/talentwire/candidate-scorer/internal/llm"
	"github.com/talentwire/candidate-scorer/internal/schemas"
	"github.com/talentwire/candidate-scorer/internal/scoring"
)

var (
	ingestCompanyID    int64
	ingestJobID        string
	ingestJobURL       string
	ingestJobPath      string
	ingestCriteriaPath string
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Ingest a job posting and precompute its ideal score",
	Long: `Fetch a job posting (by URL or local file), extract its requirements with the LLM,
compute the ideal score every applicant is normalized against, and store the posting.`,
	RunE: runIngestJob,
}

func init() {
	ingestJobCmd.Flags().Int64Var(&ingestCompanyID, "company-id", 0, "Company ID")
	ingestJobCmd.Flags().StringVar(&ingestJobID, "job-id", "", "Client job ID")
	ingestJobCmd.Flags().StringVar(&ingestJobURL, "url", "", "URL of the job posting")
	ingestJobCmd.Flags().StringVar(&ingestJobPath, "file", "", "Path to a local job posting document")
	ingestJobCmd.Flags().StringVar(&ingestCriteriaPath, "criteria", "", "Path to a hard filtering-criteria JSON file (optional)")
	_ = ingestJobCmd.MarkFlagRequired("company-id")
	_ = ingestJobCmd.MarkFlagRequired("job-id")
	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(_ *cobra.Command, _ []string) error {
	if ingestJobURL == "" && ingestJobPath == "" {
		return fmt.Errorf("either --url or --file is required")
	}

	ctx := context.Background()
	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	var data []byte
	var docType extraction.DocType
	if ingestJobURL != "" {
		data, docType, err = rt.fetcher.Fetch(ctx, ingestJobURL)
		if err != nil {
			return err
		}
	} else {
		data, err = os.ReadFile(ingestJobPath)
		if err != nil {
			return fmt.Errorf("failed to read job posting file: %w", err)
		}
		docType = extraction.DocTypePlain
	}

	text, err := rt.extractor.Extract(data, docType)
	if err != nil {
		return err
	}

	prompt := llm.BuildExtractionPrompt(llm.JobDescriptionSchema(), text)
	raw, err := rt.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return fmt.Errorf("job description extraction failed: %w", err)
	}
	jd, err := schemas.ParseJobDescription(raw)
	if err != nil {
		return err
	}

	idealScore, _ := scoring.IdealScore(jd.RequiredSkills, jd.OverallYears, rt.weightage)

	var criteria string
	if ingestCriteriaPath != "" {
		criteriaData, err := os.ReadFile(ingestCriteriaPath)
		if err != nil {
			return fmt.Errorf("failed to read criteria file: %w", err)
		}
		criteria = string(criteriaData)
	}

	postingID, err := rt.database.UpsertJobPosting(ctx, &db.JobPosting{
		CompanyID:         ingestCompanyID,
		ClientJobID:       ingestJobID,
		ExtractedText:     text,
		ParsedJD:          raw,
		IdealScore:        idealScore,
		FilteringCriteria: criteria,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Ingested job posting %d (%s): %d required skills, ideal score %.2f\n",
		postingID, jd.JobTitle, len(jd.RequiredSkills), idealScore)
	return nil
}
