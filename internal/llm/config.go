// Package llm provides the generative-model client used for email drafting
// and name-extraction fallbacks.
package llm

import "time"

// ModelTier selects model capability for a task.
type ModelTier string

const (
	// TierLite is for cheap tasks: name extraction, page summaries.
	TierLite ModelTier = "lite"
	// TierStandard is for drafting full emails.
	TierStandard ModelTier = "standard"
)

// DefaultCallTimeout bounds a single model invocation. The upstream API has
// no contractual latency bound, so every call gets a deadline.
const DefaultCallTimeout = 60 * time.Second

// Config holds the model configuration.
type Config struct {
	Models      map[ModelTier]string
	CallTimeout time.Duration
	Temperature float32
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		CallTimeout: DefaultCallTimeout,
		Temperature: 0.4,
	}
}

// GetModel returns the model name for a tier, falling back to the standard
// tier when the requested one is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}
