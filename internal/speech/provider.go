// Package speech provides best-effort text-to-speech playback. Audio is
// synthesized through a provider, written to a small on-disk cache and
// played with whatever audio player the platform offers. Playback failures
// are swallowed; pronunciation is a convenience, never a blocker.
package speech

import (
	"context"
	"fmt"
)

// Provider synthesizes speech for a piece of text and returns the path of
// the audio file to play.
type Provider interface {
	Synthesize(ctx context.Context, text string) (string, error)

	// Name returns the provider name.
	Name() string
}

// Config holds provider configuration.
type Config struct {
	Provider string // provider name: "openai"
	CacheDir string // where synthesized audio is kept

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string  // "tts-1", "tts-1-hd" or "gpt-4o-mini-tts"
	OpenAIVoice string  // "alloy", "nova", ...
	OpenAISpeed float64 // 0.25 to 4.0
}

// DefaultConfig returns the default provider configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:    "openai",
		CacheDir:    "./.speech_cache",
		OpenAIModel: "gpt-4o-mini-tts",
		OpenAIVoice: "alloy",
		OpenAISpeed: 1.0,
	}
}

// NewProvider creates the audio provider selected by the configuration.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return newOpenAIProvider(config), nil

	default:
		return nil, fmt.Errorf("unknown speech provider: %s", config.Provider)
	}
}
