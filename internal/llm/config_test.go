package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModelFallbackChain(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{
		TierStandard: "standard-model",
	}}

	// An unconfigured tier falls back to standard, then lite.
	assert.Equal(t, "standard-model", cfg.GetModel(TierAdvanced))
	assert.Equal(t, "standard-model", cfg.GetModel(TierStandard))

	cfg = &Config{Models: map[ModelTier]string{TierLite: "lite-model"}}
	assert.Equal(t, "lite-model", cfg.GetModel(TierAdvanced))

	cfg = &Config{}
	assert.Empty(t, cfg.GetModel(TierAdvanced))
}

func TestDowngradeTier(t *testing.T) {
	tier, ok := DowngradeTier(TierAdvanced)
	assert.True(t, ok)
	assert.Equal(t, TierStandard, tier)

	tier, ok = DowngradeTier(TierStandard)
	assert.True(t, ok)
	assert.Equal(t, TierLite, tier)

	_, ok = DowngradeTier(TierLite)
	assert.False(t, ok)
}

func TestDefaultGeminiConfig(t *testing.T) {
	cfg := DefaultGeminiConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		assert.NotEmpty(t, cfg.Models[tier], "tier %s", tier)
	}
}
