package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

type Client interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
	Model() string
	Close() error
}

type Config struct {
	APIKey string
	Model  string
}

type client struct {
	log   *logger.Logger
	gc    *genai.Client
	model string
}

func NewClient(ctx context.Context, cfg Config, log *logger.Logger) (Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &client{
		log:   log.With("service", "GeminiClient"),
		gc:    gc,
		model: model,
	}, nil
}

func (c *client) Model() string { return c.model }

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	m := c.gc.GenerativeModel(c.model)
	if s := strings.TrimSpace(system); s != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(s)}}
	}

	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

func (c *client) Close() error {
	if c == nil || c.gc == nil {
		return nil
	}
	return c.gc.Close()
}
