// Package config provides configuration loading and validation for the scoring service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the process-wide configuration. It is constructed once at
// startup and threaded through constructors; no component reads ambient
// environment state directly.
type Config struct {
	// Paths
	WeightagePath  string `json:"weightage_path,omitempty"`  // Path to the year-weightage JSON table
	SkillsPath     string `json:"skills_path,omitempty"`     // Path to the skill-name list (JSON array)
	EmbeddingsPath string `json:"embeddings_path,omitempty"` // Path to the embedding matrix (JSON)

	// External services
	DatabaseURL     string `json:"database_url,omitempty"`      // PostgreSQL connection URL
	APIKey          string `json:"api_key,omitempty"`           // Gemini API key
	FrontEndBaseURL string `json:"frontend_base_url,omitempty"` // Front-end mirror service base URL

	// Matching
	MatchDistanceThreshold float64 `json:"match_distance_threshold,omitempty"` // Cosine distance below which skills match
	IndustryMatchWindow    int     `json:"industry_match_window,omitempty"`    // How many recent experiences to consider

	// Behavior
	Port    int  `json:"port,omitempty"`
	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Callers
// typically run godotenv.Load() first so a local .env file is honored.
func FromEnv() Config {
	cfg := Config{
		WeightagePath:   os.Getenv("WEIGHTAGE_PATH"),
		SkillsPath:      os.Getenv("SKILLS_PATH"),
		EmbeddingsPath:  os.Getenv("EMBEDDINGS_PATH"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		APIKey:          os.Getenv("GEMINI_API_KEY"),
		FrontEndBaseURL: os.Getenv("FRONTEND_BASE_URL"),
	}
	if v := os.Getenv("MATCH_DISTANCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MatchDistanceThreshold = f
		}
	}
	if v := os.Getenv("INDUSTRY_MATCH_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.IndustryMatchWindow = n
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MatchDistanceThreshold < 0 || c.MatchDistanceThreshold > 2 {
		return fmt.Errorf("config error: 'match_distance_threshold' must be within [0, 2]")
	}
	if c.IndustryMatchWindow < 0 {
		return fmt.Errorf("config error: 'industry_match_window' must be non-negative")
	}
	if c.Port < 0 {
		return fmt.Errorf("config error: 'port' must be non-negative")
	}
	if c.WeightagePath != "" {
		if _, err := os.Stat(c.WeightagePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: weightage file not found: %s", c.WeightagePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for env-derived values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.WeightagePath == "" {
		result.WeightagePath = defaults.WeightagePath
	}
	if result.SkillsPath == "" {
		result.SkillsPath = defaults.SkillsPath
	}
	if result.EmbeddingsPath == "" {
		result.EmbeddingsPath = defaults.EmbeddingsPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.FrontEndBaseURL == "" {
		result.FrontEndBaseURL = defaults.FrontEndBaseURL
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.MatchDistanceThreshold == 0 {
		if defaults.MatchDistanceThreshold > 0 {
			result.MatchDistanceThreshold = defaults.MatchDistanceThreshold
		} else {
			result.MatchDistanceThreshold = 0.25
		}
	}
	if result.IndustryMatchWindow == 0 {
		if defaults.IndustryMatchWindow > 0 {
			result.IndustryMatchWindow = defaults.IndustryMatchWindow
		} else {
			result.IndustryMatchWindow = 3
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge.

	return result
}
