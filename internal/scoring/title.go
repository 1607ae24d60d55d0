package scoring

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/talentwire/candidate-scorer/internal/llm"
	"github.com/talentwire/candidate-scorer/internal/schemas"
	"github.com/talentwire/candidate-scorer/internal/types"
)

// TitleMatch asks the model whether any of the candidate's recent job titles
// performs a similar function to the job's title. The model is treated as a
// boolean oracle: its response must be a JSON object with a boolean "result"
// key, and a malformed response fails the call rather than defaulting to
// false. Empty inputs short-circuit to false without a model call.
func TitleMatch(ctx context.Context, client llm.Client, experiences []types.Experience, jobTitle string, logger *zap.Logger) (bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if jobTitle == "" || len(experiences) == 0 {
		return false, nil
	}

	titles := make([]string, 0, len(experiences))
	for _, exp := range experiences {
		if exp.Title != "" {
			titles = append(titles, exp.Title)
		}
	}
	if len(titles) == 0 {
		return false, nil
	}

	prompt := llm.BuildTitleMatchPrompt(jobTitle, titles)
	raw, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return false, fmt.Errorf("title match call failed: %w", err)
	}

	result, err := schemas.ParseTitleMatch(raw)
	if err != nil {
		return false, fmt.Errorf("title match response invalid: %w", err)
	}

	logger.Debug("title match judged",
		zap.String("job_title", jobTitle),
		zap.Strings("candidate_titles", titles),
		zap.Bool("result", result))
	return result, nil
}
