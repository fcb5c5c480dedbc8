package gemini

import (
	"context"
	"os"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

func TestResponseTextJoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("# Título\n"), genai.Text("corpo")}},
		}},
	}
	if got := responseText(resp); got != "# Título\ncorpo" {
		t.Fatalf("responseText: %q", got)
	}
}

func TestResponseTextEmpty(t *testing.T) {
	cases := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
	}
	for i, resp := range cases {
		if got := responseText(resp); got != "" {
			t.Fatalf("case %d: want empty got %q", i, got)
		}
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{}, logger.Nop()); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestGenerateTextIntegration(t *testing.T) {
	key := os.Getenv("TEST_GEMINI_API_KEY")
	if key == "" {
		t.Skip("set TEST_GEMINI_API_KEY to run gemini integration tests")
	}
	c, err := NewClient(context.Background(), Config{APIKey: key}, logger.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()
	got, err := c.GenerateText(context.Background(), "Responda em uma palavra.", "Qual a cor do céu?")
	if err != nil || got == "" {
		t.Fatalf("GenerateText: %q %v", got, err)
	}
}
