package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/agrovet-backend/internal/pkg/httpx"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/platform/promptstyle"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4.1-mini"
	completionPath = "/v1/chat/completions"
	maxBackoff     = 10 * time.Second
)

// ErrTruncated is returned when the model stopped at the token limit; a
// partial topic document is never handed back.
var ErrTruncated = errors.New("openai: completion truncated at token limit")

// Client generates topic documents through the Chat Completions API.
type Client interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
	Model() string
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
}

type client struct {
	log  *logger.Logger
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config, log *logger.Logger) (Client, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model = strings.TrimSpace(cfg.Model); cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.4
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 8192
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 180 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &client{
		log:  log.With("client", "OpenAI", "model", cfg.Model),
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *client) Model() string { return c.cfg.Model }

// APIError is a non-2xx answer from the API, with the provider's error
// object decoded when the body carries one.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("openai %d (%s): %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("openai %d: %s", e.StatusCode, msg)
}

func (e *APIError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var body struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    any    `json:"code"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error.Message != "" {
		apiErr.Message = body.Error.Message
		apiErr.Type = body.Error.Type
		if body.Error.Code != nil {
			apiErr.Code = fmt.Sprint(body.Error.Code)
		}
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	req := completionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: promptstyle.ApplySystem(system)},
			{Role: "user", Content: user},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	var resp completionResponse
	if err := c.postWithRetry(ctx, completionPath, &req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: response %s has no choices", resp.ID)
	}
	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("openai: model refused: %s", choice.Message.Refusal)
	}
	if choice.FinishReason == "length" {
		c.log.Warn("completion hit token limit",
			"max_tokens", c.cfg.MaxTokens,
			"completion_tokens", resp.Usage.CompletionTokens,
		)
		return "", ErrTruncated
	}
	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai: empty completion")
	}
	c.log.Debug("completion received",
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return text, nil
}

func (c *client) postWithRetry(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("openai: encode request: %w", err)
	}

	backoff := time.Second
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, err := c.post(ctx, path, payload, out)
		if err == nil {
			return nil
		}
		if attempt >= c.cfg.MaxRetries || !httpx.IsRetryableError(err) || ctx.Err() != nil {
			return err
		}

		wait := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, maxBackoff))
		c.log.Warn("retrying completion request",
			"attempt", attempt+1,
			"max_retries", c.cfg.MaxRetries,
			"wait", wait.String(),
			"error", err.Error(),
		)
		if err := httpx.Sleep(ctx, wait); err != nil {
			return err
		}
		backoff *= 2
	}
}

func (c *client) post(ctx context.Context, path string, payload []byte, out any) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, decodeAPIError(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp, fmt.Errorf("openai: decode response: %w", err)
	}
	return resp, nil
}
