package app

import (
	"context"
	"fmt"

	"github.com/yungbote/agrovet-backend/internal/platform/gemini"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/platform/openai"
	"github.com/yungbote/agrovet-backend/internal/services"
)

type Clients struct {
	// Generator is nil when the selected provider has no API key.
	Generator services.Generator
	gemini    gemini.Client
}

func (c Clients) Close() error {
	if c.gemini != nil {
		return c.gemini.Close()
	}
	return nil
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...", "provider", cfg.ContentProvider)
	switch cfg.ContentProvider {
	case ProviderGemini, "":
		if cfg.GeminiAPIKey == "" {
			log.Warn("GEMINI_API_KEY not set; topic documents are disabled")
			return Clients{}, nil
		}
		gc, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init gemini: %w", err)
		}
		return Clients{Generator: gc, gemini: gc}, nil
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Warn("OPENAI_API_KEY not set; topic documents are disabled")
			return Clients{}, nil
		}
		oc, err := openai.NewClient(openai.Config{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIModel,
			MaxRetries: 2,
		}, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init openai: %w", err)
		}
		return Clients{Generator: oc}, nil
	default:
		return Clients{}, fmt.Errorf("unknown CONTENT_PROVIDER %q", cfg.ContentProvider)
	}
}
