package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotEmpty(t, cfg.Models[TierLite])
	assert.NotEmpty(t, cfg.Models[TierStandard])
	assert.Equal(t, DefaultCallTimeout, cfg.CallTimeout)
}

func TestGetModel_FallsBackToStandard(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierStandard: "model-std"}}
	assert.Equal(t, "model-std", cfg.GetModel(TierLite))
	assert.Equal(t, "model-std", cfg.GetModel(TierStandard))

	empty := &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierLite))
}
