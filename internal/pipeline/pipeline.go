// Package pipeline orchestrates one scoring run: load the posting and resume,
// extract entities, score concurrently, persist, and mirror the outcome to the
// front end. Each run drives a task-status row through its lifecycle.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talentwire/candidate-scorer/internal/config"
	"github.com/talentwire/candidate-scorer/internal/db"
	"github.com/talentwire/candidate-scorer/internal/embeddings"
	"github.com/talentwire/candidate-scorer/internal/extraction"
	"github.com/talentwire/candidate-scorer/internal/factor"
	"github.com/talentwire/candidate-scorer/internal/frontend"
	"github.com/talentwire/candidate-scorer/internal/llm"
	"github.com/talentwire/candidate-scorer/internal/matching"
	"github.com/talentwire/candidate-scorer/internal/schemas"
	"github.com/talentwire/candidate-scorer/internal/scoring"
	"github.com/talentwire/candidate-scorer/internal/types"
)

// Task statuses recorded as a run progresses. PARSING AND SCORING DONE marks
// the business outcome as durable; the two COMPLETED statuses only differ in
// whether the front-end mirror accepted the final push.
const (
	TaskStarted        = "STARTED"
	TaskScoringDone    = "PARSING AND SCORING DONE"
	TaskCompleted      = "COMPLETED SUCCESS"
	TaskCompletedFEErr = "COMPLETED FE ERROR"
	TaskError          = "ERROR"
)

// Application row statuses.
const (
	appStatusWorking   = "WORKING"
	appStatusProcessed = "PROCESSED"
	appStatusError     = "ERROR"
)

// Store is the slice of the database the pipeline needs.
type Store interface {
	GetJobPosting(ctx context.Context, companyID int64, clientJobID string) (*db.JobPosting, error)
	UpsertJobApplication(ctx context.Context, app *db.JobApplication) (int64, error)
	UpdateJobApplicationStatus(ctx context.Context, applicationID int64, status string) error
	UpdateJobApplicationEntities(ctx context.Context, applicationID int64, extractedText, parsedResume, status string) error
	UpdateJobApplicationBasics(ctx context.Context, applicationID int64, basicsJSON string) error
	UpsertCandidateScore(ctx context.Context, score *types.CandidateScore) error
	CreateTask(ctx context.Context, status string) (uuid.UUID, error)
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status string) error
}

// DocumentFetcher downloads a resume document by URL.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, extraction.DocType, error)
}

// Request identifies one application to score.
type Request struct {
	CompanyID           int64  `json:"company_id"`
	ClientApplicationID string `json:"client_application_id"`
	ClientJobID         string `json:"client_job_id"`
	ResumeURL           string `json:"resume_url"`
}

// Runner executes scoring runs. Safe for concurrent use; the embedding cache
// serializes its own table growth.
type Runner struct {
	store     Store
	client    llm.Client
	cache     *embeddings.Cache
	matcher   *matching.Matcher
	weightage *config.WeightageTable
	fetcher   DocumentFetcher
	extractor extraction.TextExtractor
	notifier  frontend.Notifier

	industryWindow int
	logger         *zap.Logger
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(store Store, client llm.Client, cache *embeddings.Cache, matcher *matching.Matcher,
	weightage *config.WeightageTable, fetcher DocumentFetcher, extractor extraction.TextExtractor,
	notifier frontend.Notifier, industryWindow int, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if industryWindow <= 0 {
		industryWindow = 3
	}
	return &Runner{
		store:          store,
		client:         client,
		cache:          cache,
		matcher:        matcher,
		weightage:      weightage,
		fetcher:        fetcher,
		extractor:      extractor,
		notifier:       notifier,
		industryWindow: industryWindow,
		logger:         logger,
	}
}

// Run executes one scoring run under the given task ID. Any failure before the
// score is durable marks both the task and the application as ERROR and mirrors
// the failure to the front end before returning the error. After the score is
// durable, a rejected front-end push downgrades the task to COMPLETED FE ERROR
// but never rolls the score back and never surfaces as an error.
func (r *Runner) Run(ctx context.Context, taskID uuid.UUID, req Request) error {
	logger := r.logger.With(
		zap.String("task_id", taskID.String()),
		zap.Int64("company_id", req.CompanyID),
		zap.String("client_application_id", req.ClientApplicationID))

	run := &runState{taskID: taskID, req: req, logger: logger}
	if err := r.execute(ctx, run); err != nil {
		logger.Error("scoring run failed", zap.Error(err))
		r.failRun(ctx, run, err)
		return err
	}
	return nil
}

// runState carries the accumulating artifacts of one run between phases.
type runState struct {
	taskID uuid.UUID
	req    Request
	logger *zap.Logger

	applicationID int64
	posting       *db.JobPosting
	jd            *types.ParsedJobDescription
	resumeText    string
	resume        *types.ParsedResume
	basics        *types.Basics

	score *types.CandidateScore
}

func (r *Runner) execute(ctx context.Context, run *runState) error {
	if err := r.load(ctx, run); err != nil {
		return err
	}
	run.logger.Debug("run loaded", zap.Int64("application_id", run.applicationID))

	if err := r.extractEntities(ctx, run); err != nil {
		return err
	}
	run.logger.Debug("entities extracted",
		zap.Int("skills", len(run.resume.Skills)),
		zap.Int("experiences", len(run.resume.Experiences)))

	if err := r.scoreCandidate(ctx, run); err != nil {
		return err
	}
	run.logger.Info("candidate scored",
		zap.String("bucket", string(run.score.Bucket)),
		zap.Float64("match_percent", run.score.MatchPercent),
		zap.Float64("factor_score", run.score.FactorScore))

	if err := r.persist(ctx, run); err != nil {
		return err
	}

	r.notify(ctx, run)
	return nil
}

// load resolves the job posting, registers the application row, and reduces
// the resume document to text.
func (r *Runner) load(ctx context.Context, run *runState) error {
	posting, err := r.store.GetJobPosting(ctx, run.req.CompanyID, run.req.ClientJobID)
	if err != nil {
		return err
	}
	if posting == nil {
		return fmt.Errorf("job posting %s not found for company %d", run.req.ClientJobID, run.req.CompanyID)
	}
	jd, err := schemas.ParseJobDescription(posting.ParsedJD)
	if err != nil {
		return fmt.Errorf("job posting %s has invalid parsed JD: %w", run.req.ClientJobID, err)
	}
	run.posting = posting
	run.jd = jd

	applicationID, err := r.store.UpsertJobApplication(ctx, &db.JobApplication{
		CompanyID:           run.req.CompanyID,
		ClientApplicationID: run.req.ClientApplicationID,
		ClientJobID:         run.req.ClientJobID,
		ResumeURL:           run.req.ResumeURL,
		Status:              appStatusWorking,
	})
	if err != nil {
		return err
	}
	run.applicationID = applicationID

	r.notifier.NotifyApplication(ctx, run.req.ClientApplicationID, frontend.StatusUpdate{
		CompanyID:        run.req.CompanyID,
		ProcessingStatus: frontend.StatusWorking,
		Progress:         5,
	})

	data, docType, err := r.fetcher.Fetch(ctx, run.req.ResumeURL)
	if err != nil {
		return err
	}
	text, err := r.extractor.Extract(data, docType)
	if err != nil {
		return err
	}
	run.resumeText = text
	return nil
}

// extractEntities runs the resume entity extraction and persists its output
// alongside the extracted text.
func (r *Runner) extractEntities(ctx context.Context, run *runState) error {
	prompt := llm.BuildExtractionPrompt(llm.ResumeEntitiesSchema(), run.resumeText)
	raw, err := r.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return fmt.Errorf("resume entity extraction failed: %w", err)
	}
	resume, err := schemas.ParseResume(raw)
	if err != nil {
		return err
	}
	run.resume = resume

	if err := r.store.UpdateJobApplicationEntities(ctx, run.applicationID, run.resumeText, raw, appStatusWorking); err != nil {
		return err
	}

	r.notifier.NotifyApplication(ctx, run.req.ClientApplicationID, frontend.StatusUpdate{
		CompanyID:        run.req.CompanyID,
		ProcessingStatus: frontend.StatusWorking,
		Progress:         20,
	})
	return nil
}

// scoreCandidate runs the three scoring sub-computations concurrently while a
// heartbeat mirrors advisory progress to the front end, then assembles the
// CandidateScore.
func (r *Runner) scoreCandidate(ctx context.Context, run *runState) error {
	heartbeat := newHeartbeat(r.notifier, run.req, 20)
	heartbeat.start(ctx)
	defer heartbeat.stop()

	var (
		matchingSkills types.MatchingSkills
		rawScore       float64
		learnability   bool
		industryMatch  bool
		titleMatch     bool

		basicsJSON string

		factorResult *types.FactorResult
		summary      string
	)

	recent := run.resume.Experiences
	if len(recent) > r.industryWindow {
		recent = recent[:r.industryWindow]
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		matchingSkills, err = r.matcher.MatchSkills(gctx, run.resume.Skills, run.jd.RequiredSkills)
		if err != nil {
			return err
		}
		rawScore, _ = r.matcher.AggregateScore(matchingSkills, run.jd.RequiredSkills)

		learnability, err = r.matcher.Learnability(gctx, run.resume.CertificationSkills, run.jd.RequiredSkills)
		if err != nil {
			return err
		}

		if err := r.cache.Flush(); err != nil {
			run.logger.Warn("failed to flush embedding lookup", zap.Error(err))
		}

		industryMatch = scoring.IndustryMatch(recent, run.jd.Industries)
		titleMatch, err = scoring.TitleMatch(gctx, r.client, recent, run.jd.JobTitle, run.logger)
		return err
	})

	g.Go(func() error {
		prompt := llm.BuildExtractionPrompt(llm.BasicsSchema(), run.resumeText)
		raw, err := r.client.GenerateJSON(gctx, prompt, llm.TierLite)
		if err != nil {
			return fmt.Errorf("basics extraction failed: %w", err)
		}
		basics, err := schemas.ParseBasics(raw)
		if err != nil {
			return err
		}
		run.basics = basics
		basicsJSON = raw
		return nil
	})

	g.Go(func() error {
		prompt := llm.BuildFactorAnalysisPrompt(run.posting.ExtractedText, run.resumeText)
		raw, err := r.client.GenerateJSON(gctx, prompt, llm.TierAdvanced)
		if err != nil {
			return fmt.Errorf("factor analysis failed: %w", err)
		}
		result, err := schemas.ParseFactorResult(raw)
		if err != nil {
			return err
		}
		factorResult, err = factor.Adjust(result, run.jd, run.logger)
		if err != nil {
			return err
		}

		summaryPrompt := llm.BuildMatchSummaryPrompt(run.posting.ExtractedText, run.resumeText)
		summaryRaw, err := r.client.GenerateJSON(gctx, summaryPrompt, llm.TierStandard)
		if err != nil {
			return fmt.Errorf("match summary failed: %w", err)
		}
		summary, err = schemas.ParseSummary(summaryRaw)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	heartbeat.stop()

	if err := r.store.UpdateJobApplicationBasics(ctx, run.applicationID, basicsJSON); err != nil {
		return err
	}

	idealScore := run.posting.IdealScore
	if idealScore == 0 {
		idealScore, _ = scoring.IdealScore(run.jd.RequiredSkills, run.jd.OverallYears, r.weightage)
	}
	matchPercent := scoring.MatchPercent(rawScore, idealScore)

	calculations, err := json.Marshal(factorResult.Calculations)
	if err != nil {
		return fmt.Errorf("failed to marshal factor calculations: %w", err)
	}

	run.score = &types.CandidateScore{
		CompanyID:         run.req.CompanyID,
		JobApplicationID:  run.applicationID,
		Bucket:            scoring.BucketFor(matchPercent),
		RawMatchScore:     rawScore,
		MatchPercent:      matchPercent,
		Learnability:      learnability,
		IndustryMatch:     industryMatch,
		TitleMatch:        titleMatch,
		MatchingSkills:    matchingSkills,
		FactorScore:       factorResult.FinalScore,
		FactorExplanation: factorResult.FinalExplanation,
		FactorCalculation: string(calculations),
		FactorSummary:     summary,
	}
	return nil
}

// persist makes the scoring outcome durable. Once this returns nil the run
// can no longer end in ERROR.
func (r *Runner) persist(ctx context.Context, run *runState) error {
	if err := r.store.UpsertCandidateScore(ctx, run.score); err != nil {
		return err
	}
	if err := r.store.UpdateJobApplicationStatus(ctx, run.applicationID, appStatusProcessed); err != nil {
		return err
	}
	return r.store.UpdateTaskStatus(ctx, run.taskID, TaskScoringDone)
}

// notify pushes the final outcome to the front end and records the terminal
// task status. The push is best effort: a rejection downgrades the terminal
// status, nothing more.
func (r *Runner) notify(ctx context.Context, run *runState) {
	update := frontend.StatusUpdate{
		CompanyID:        run.req.CompanyID,
		ProcessingStatus: frontend.StatusProcessed,
		Progress:         100,
		Score:            string(run.score.Bucket),
		ScoreSummary:     r.scoreSummary(run),
	}
	if run.basics != nil {
		update.CandidateName = run.basics.Name
		update.CandidateEmail = run.basics.Email
		update.CandidatePhone = run.basics.Phone
		update.CandidateTitle = run.basics.CurrentTitle
	}

	terminal := TaskCompleted
	if !r.notifier.NotifyApplication(ctx, run.req.ClientApplicationID, update) {
		run.logger.Warn("front-end rejected final push, completing with FE error")
		terminal = TaskCompletedFEErr
	}
	if err := r.store.UpdateTaskStatus(ctx, run.taskID, terminal); err != nil {
		run.logger.Warn("failed to record terminal task status", zap.Error(err))
	}
}

// scoreSummary combines the narrative summary with the hard-criteria gate
// verdict for the front end. Failed criteria annotate the summary; they never
// alter the persisted score.
func (r *Runner) scoreSummary(run *runState) string {
	summary := run.score.FactorSummary

	criteria, err := ParseFilteringCriteria(run.posting.FilteringCriteria)
	if err != nil {
		run.logger.Warn("job posting has invalid filtering criteria", zap.Error(err))
		return summary
	}
	if criteria == nil {
		return summary
	}

	reasons := criteria.Evaluate(run.basics, run.resume)
	if len(reasons) == 0 {
		return summary
	}
	run.logger.Info("candidate fails hard criteria", zap.Strings("reasons", reasons))
	return summary + "\n\nDoes not meet hard criteria: " + joinReasons(reasons)
}

// failRun records the ERROR outcome everywhere it is visible: task row,
// application row (when one exists yet), and the front-end mirror.
func (r *Runner) failRun(ctx context.Context, run *runState, cause error) {
	if err := r.store.UpdateTaskStatus(ctx, run.taskID, TaskError); err != nil {
		run.logger.Warn("failed to record task error status", zap.Error(err))
	}
	if run.applicationID != 0 {
		if err := r.store.UpdateJobApplicationStatus(ctx, run.applicationID, appStatusError); err != nil {
			run.logger.Warn("failed to record application error status", zap.Error(err))
		}
	}
	r.notifier.NotifyApplication(ctx, run.req.ClientApplicationID, frontend.StatusUpdate{
		CompanyID:        run.req.CompanyID,
		ProcessingStatus: frontend.StatusError,
		Progress:         100,
		ScoreSummary:     cause.Error(),
	})
}
