package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/agrovet-backend/internal/domain/user"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"STORE_BACKEND", "CONTENT_PROVIDER", "CONTENT_TIMEOUT_SECONDS", "CONTENT_CACHE_ENABLED", "GEMINI_API_KEY", "API_KEY", "CORS_ORIGINS", "PORT"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	if cfg.StoreBackend != StoreSQLite || cfg.ContentProvider != ProviderGemini {
		t.Fatalf("backend/provider defaults: %q %q", cfg.StoreBackend, cfg.ContentProvider)
	}
	if cfg.ContentTimeout != 90*time.Second || !cfg.ContentCacheEnabled || cfg.Port != "8080" {
		t.Fatalf("content defaults: %+v", cfg)
	}
	if cfg.CORSOrigins != nil {
		t.Fatalf("CORS origins should default to nil, got %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("CONTENT_PROVIDER", "openai")
	t.Setenv("CONTENT_TIMEOUT_SECONDS", "15")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")

	cfg := LoadConfig()
	if cfg.StoreBackend != StoreRedis || cfg.ContentProvider != ProviderOpenAI {
		t.Fatalf("overrides: %q %q", cfg.StoreBackend, cfg.ContentProvider)
	}
	if cfg.ContentTimeout != 15*time.Second || cfg.GeminiAPIKey != "legacy-key" || cfg.OtelSampleRatio != 0.5 {
		t.Fatalf("overrides: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	_, err := openStore(context.Background(), logger.Nop(), Config{StoreBackend: "etcd"}, nil)
	var be *StoreBootstrapError
	if !errors.As(err, &be) || be.Backend != "etcd" {
		t.Fatalf("want StoreBootstrapError got %v", err)
	}
}

func TestWireClientsWithoutKeyDisablesContent(t *testing.T) {
	for _, p := range []ContentProvider{ProviderGemini, ProviderOpenAI} {
		c, err := wireClients(context.Background(), logger.Nop(), Config{ContentProvider: p})
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if c.Generator != nil {
			t.Fatalf("%s: generator should be nil without a key", p)
		}
	}
	if _, err := wireClients(context.Background(), logger.Nop(), Config{ContentProvider: "llama"}); err == nil {
		t.Fatalf("unknown provider accepted")
	}
}

func TestAppBootsAndProvisionsGuest(t *testing.T) {
	cfg := Config{
		LogMode:         "development",
		StoreBackend:    StoreSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "agrovet.db"),
		ContentProvider: ProviderGemini,
		ContentTimeout:  time.Second,
	}
	a, err := newWithLogger(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("newWithLogger: %v", err)
	}
	defer a.Close()

	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cur, err := a.Repos.Portal.CurrentUser(context.Background())
	if err != nil || cur == nil || cur.ID != user.GuestID {
		t.Fatalf("guest session: %v %v", cur, err)
	}

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("me: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses/agronomia/disciplines/botanica/topics/conceitos/document", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("document without key: %d", rec.Code)
	}
}
