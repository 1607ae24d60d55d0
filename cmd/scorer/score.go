package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentwire/candidate-scorer/internal/pipeline"
)

var (
	scoreCompanyID     int64
	scoreApplicationID string
	scoreJobID         string
	scoreResumeURL     string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one job application synchronously",
	Long:  `Run the full scoring pipeline for a single application and block until it completes. The job posting must already be ingested.`,
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().Int64Var(&scoreCompanyID, "company-id", 0, "Company ID")
	scoreCmd.Flags().StringVar(&scoreApplicationID, "application-id", "", "Client application ID")
	scoreCmd.Flags().StringVar(&scoreJobID, "job-id", "", "Client job ID the application targets")
	scoreCmd.Flags().StringVar(&scoreResumeURL, "resume-url", "", "URL of the candidate's resume document")
	_ = scoreCmd.MarkFlagRequired("company-id")
	_ = scoreCmd.MarkFlagRequired("application-id")
	_ = scoreCmd.MarkFlagRequired("job-id")
	_ = scoreCmd.MarkFlagRequired("resume-url")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	taskID, err := rt.database.CreateTask(ctx, pipeline.TaskStarted)
	if err != nil {
		return err
	}

	if err := rt.runner.Run(ctx, taskID, pipeline.Request{
		CompanyID:           scoreCompanyID,
		ClientApplicationID: scoreApplicationID,
		ClientJobID:         scoreJobID,
		ResumeURL:           scoreResumeURL,
	}); err != nil {
		return err
	}

	task, err := rt.database.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	fmt.Printf("Task %s: %s\n", taskID, task.Status)
	return nil
}
