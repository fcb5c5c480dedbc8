package app

import (
	"strings"
	"time"

	"github.com/yungbote/agrovet-backend/internal/data/db"
	"github.com/yungbote/agrovet-backend/internal/platform/envutil"
)

type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StoreSQLite   StoreBackend = "sqlite"
	StorePostgres StoreBackend = "postgres"
	StoreRedis    StoreBackend = "redis"
)

type ContentProvider string

const (
	ProviderGemini ContentProvider = "gemini"
	ProviderOpenAI ContentProvider = "openai"
)

type Config struct {
	LogMode     string
	Port        string
	CORSOrigins []string

	StoreBackend StoreBackend
	SQLitePath   string
	Postgres     db.PostgresConfig
	RedisAddr    string
	RedisPrefix  string

	ContentProvider     ContentProvider
	GeminiAPIKey        string
	GeminiModel         string
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	OpenAIModel         string
	ContentTimeout      time.Duration
	ContentCacheEnabled bool

	OtelEnabled     bool
	OtelEndpoint    string
	OtelHeaders     string
	OtelInsecure    bool
	OtelSampleRatio float64
	Environment     string
	Version         string

	MetricsEnabled        bool
	MetricsScrapeInterval time.Duration
}

// LoadConfig reads the process environment; call godotenv first so a .env
// file can fill the gaps.
func LoadConfig() Config {
	return Config{
		LogMode:     envutil.String("LOG_MODE", "development"),
		Port:        envutil.String("PORT", "8080"),
		CORSOrigins: envutil.List("CORS_ORIGINS", nil),

		StoreBackend: StoreBackend(strings.ToLower(envutil.String("STORE_BACKEND", string(StoreSQLite)))),
		SQLitePath:   envutil.String("SQLITE_PATH", "agrovet.db"),
		Postgres: db.PostgresConfig{
			Host:     envutil.String("POSTGRES_HOST", "localhost"),
			Port:     envutil.String("POSTGRES_PORT", "5432"),
			User:     envutil.String("POSTGRES_USER", "postgres"),
			Password: envutil.String("POSTGRES_PASSWORD", ""),
			Name:     envutil.String("POSTGRES_NAME", "agrovet"),
		},
		RedisAddr:   envutil.String("REDIS_ADDR", ""),
		RedisPrefix: envutil.String("REDIS_PREFIX", ""),

		ContentProvider:     ContentProvider(strings.ToLower(envutil.String("CONTENT_PROVIDER", string(ProviderGemini)))),
		GeminiAPIKey:        envutil.FirstString("", "GEMINI_API_KEY", "API_KEY"),
		GeminiModel:         envutil.String("GEMINI_MODEL", ""),
		OpenAIAPIKey:        envutil.String("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       envutil.String("OPENAI_BASE_URL", ""),
		OpenAIModel:         envutil.String("OPENAI_MODEL", ""),
		ContentTimeout:      envutil.Seconds("CONTENT_TIMEOUT_SECONDS", 90*time.Second),
		ContentCacheEnabled: envutil.Bool("CONTENT_CACHE_ENABLED", true),

		OtelEnabled:     envutil.Bool("OTEL_ENABLED", false),
		OtelEndpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OtelHeaders:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""),
		OtelInsecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		OtelSampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
		Environment:     envutil.String("APP_ENV", "development"),
		Version:         envutil.String("APP_VERSION", "dev"),

		MetricsEnabled:        envutil.Bool("METRICS_ENABLED", false),
		MetricsScrapeInterval: envutil.Seconds("METRICS_SCRAPE_INTERVAL_SECONDS", 10*time.Second),
	}
}
