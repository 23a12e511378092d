package transcribe

import (
	"github.com/nguyentantai21042004/transcribe-web/internal/config"
)

// NewFactory returns a Factory for the configured provider.
func NewFactory(cfg *config.Config) Factory {
	switch cfg.Transcribe.Provider {
	case "gemini":
		return func(apiKey string) Transcriber {
			return NewGemini(apiKey, cfg.Transcribe.Model)
		}
	default:
		return func(apiKey string) Transcriber {
			return NewOpenAI(apiKey, cfg.Transcribe.Model, cfg.Transcribe.BaseURL)
		}
	}
}
