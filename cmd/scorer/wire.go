package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/talentwire/candidate-scorer/internal/config"
	"github.com/talentwire/candidate-scorer/internal/db"
	"github.com/talentwire/candidate-scorer/internal/embeddings"
	"github.com/talentwire/candidate-scorer/internal/extraction"
	"github.com/talentwire/candidate-scorer/internal/frontend"
	"github.com/talentwire/candidate-scorer/internal/llm"
	"github.com/talentwire/candidate-scorer/internal/logging"
	"github.com/talentwire/candidate-scorer/internal/matching"
	"github.com/talentwire/candidate-scorer/internal/pipeline"
)

// runtime holds every wired collaborator a command needs. Built once per
// invocation; close() releases the database pool and the LLM client.
type runtime struct {
	cfg       config.Config
	logger    *zap.Logger
	database  *db.DB
	client    llm.Client
	cache     *embeddings.Cache
	matcher   *matching.Matcher
	weightage *config.WeightageTable
	fetcher   *extraction.Fetcher
	extractor *extraction.Extractor
	runner    *pipeline.Runner
}

func (rt *runtime) close() {
	if rt.client != nil {
		_ = rt.client.Close()
	}
	if rt.database != nil {
		rt.database.Close()
	}
	if rt.logger != nil {
		_ = rt.logger.Sync()
	}
}

// buildRuntime loads configuration (env over optional config file) and wires
// the full collaborator graph.
func buildRuntime(ctx context.Context) (*runtime, error) {
	cfg := config.FromEnv()
	if configPath != "" {
		defaults, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*defaults)
	} else {
		cfg = cfg.MergeWithDefaults(config.Config{})
	}
	cfg.Verbose = cfg.Verbose || verbose
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.WeightagePath == "" {
		return nil, fmt.Errorf("WEIGHTAGE_PATH is required")
	}
	if cfg.SkillsPath == "" || cfg.EmbeddingsPath == "" {
		return nil, fmt.Errorf("SKILLS_PATH and EMBEDDINGS_PATH are required")
	}

	logger, err := logging.New(false, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logger}

	rt.weightage, err = config.LoadWeightageTable(cfg.WeightagePath)
	if err != nil {
		rt.close()
		return nil, err
	}

	rt.database, err = db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rt.client, err = llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.APIKey, logger)
	if err != nil {
		rt.close()
		return nil, err
	}

	rt.cache, err = embeddings.Open(cfg.SkillsPath, cfg.EmbeddingsPath, rt.client, logger)
	if err != nil {
		rt.close()
		return nil, err
	}

	rt.matcher = matching.NewMatcher(rt.cache, cfg.MatchDistanceThreshold, logger)
	rt.fetcher = extraction.NewFetcher()
	rt.extractor = extraction.NewExtractor()

	notifier := frontend.Notifier(frontend.NewHTTPNotifier(cfg.FrontEndBaseURL, logger))
	if cfg.FrontEndBaseURL == "" {
		logger.Warn("FRONTEND_BASE_URL not set, front-end pushes disabled")
		notifier = frontend.NopNotifier{}
	}

	rt.runner = pipeline.NewRunner(rt.database, rt.client, rt.cache, rt.matcher,
		rt.weightage, rt.fetcher, rt.extractor, notifier, cfg.IndustryMatchWindow, logger)

	return rt, nil
}
