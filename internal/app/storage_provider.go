package app

import (
	"context"
	"fmt"

	"github.com/yungbote/agrovet-backend/internal/data/db"
	"github.com/yungbote/agrovet-backend/internal/observability"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

type StoreBootstrapError struct {
	Backend StoreBackend
	Cause   error
}

func (e *StoreBootstrapError) Error() string {
	return fmt.Sprintf("store bootstrap failed (backend=%q): %v", e.Backend, e.Cause)
}

func (e *StoreBootstrapError) Unwrap() error { return e.Cause }

// openStore builds the configured backend and, when metrics are on, starts
// the matching pool or ping collector.
func openStore(ctx context.Context, log *logger.Logger, cfg Config, m *observability.Metrics) (db.Store, error) {
	switch cfg.StoreBackend {
	case StoreMemory:
		log.Warn("using in-memory store; state is lost on restart")
		return db.NewMemoryStore(), nil
	case StoreSQLite, "":
		s, err := db.NewSQLiteStore(cfg.SQLitePath, log)
		if err != nil {
			return nil, &StoreBootstrapError{Backend: StoreSQLite, Cause: err}
		}
		m.StartDBCollector(ctx, log, s.DB())
		return s, nil
	case StorePostgres:
		s, err := db.NewPostgresStore(cfg.Postgres, log)
		if err != nil {
			return nil, &StoreBootstrapError{Backend: StorePostgres, Cause: err}
		}
		m.StartDBCollector(ctx, log, s.DB())
		return s, nil
	case StoreRedis:
		s, err := db.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPrefix, log)
		if err != nil {
			return nil, &StoreBootstrapError{Backend: StoreRedis, Cause: err}
		}
		m.StartRedisCollector(ctx, log, s.Client())
		return s, nil
	default:
		return nil, &StoreBootstrapError{Backend: cfg.StoreBackend, Cause: fmt.Errorf("unknown STORE_BACKEND")}
	}
}
