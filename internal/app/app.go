package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/agrovet-backend/internal/data/db"
	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	apphttp "github.com/yungbote/agrovet-backend/internal/http"
	"github.com/yungbote/agrovet-backend/internal/observability"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/realtime"
	"github.com/yungbote/agrovet-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    db.Store
	Bus      bus.Bus
	Repos    Repos
	Services Services
	SSEHub   *realtime.SSEHub
	Router   *gin.Engine

	clients      Clients
	server       *apphttp.Server
	detachHub    func()
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a, err := newWithLogger(cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

func newWithLogger(cfg Config, log *logger.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: "agrovet",
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Endpoint:    cfg.OtelEndpoint,
		Headers:     cfg.OtelHeaders,
		Insecure:    cfg.OtelInsecure,
		SampleRatio: cfg.OtelSampleRatio,
	})
	metrics := observability.Init(cfg.MetricsEnabled, cfg.MetricsScrapeInterval)

	fail := func(err error) (*App, error) {
		cancel()
		_ = otelShutdown(context.Background())
		return nil, err
	}

	cat, err := catalog.Default()
	if err != nil {
		return fail(fmt.Errorf("load catalog: %w", err))
	}

	store, err := openStore(ctx, log, cfg, metrics)
	if err != nil {
		return fail(err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = store.Close()
		return fail(err)
	}

	eventBus := bus.New(log)
	hub := realtime.NewSSEHub(log)
	detach := hub.Attach(eventBus)

	reposet := wireRepos(store, eventBus, log)
	serviceset, err := wireServices(log, cfg, cat, store, reposet, clients)
	if err != nil {
		detach()
		_ = clients.Close()
		_ = store.Close()
		return fail(err)
	}

	router := wireRouter(log, cfg, wireHandlers(log, cat, serviceset, hub), metrics)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Store:        store,
		Bus:          eventBus,
		Repos:        reposet,
		Services:     serviceset,
		SSEHub:       hub,
		Router:       router,
		clients:      clients,
		server:       &apphttp.Server{Engine: router},
		detachHub:    detach,
		otelShutdown: otelShutdown,
		cancel:       cancel,
	}, nil
}

// Start provisions the guest session when nobody is logged in.
func (a *App) Start(ctx context.Context) error {
	if a == nil {
		return fmt.Errorf("app not initialized")
	}
	u, err := a.Services.Auth.EnsureGuestSession(ctx)
	if err != nil {
		return fmt.Errorf("guest session: %w", err)
	}
	a.Log.Info("session ready", "user_id", u.ID)
	return nil
}

// Run blocks serving HTTP until Shutdown.
func (a *App) Run(addr string) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "addr", addr)
	return a.server.Run(addr)
}

func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.detachHub != nil {
		a.detachHub()
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	var errs []error
	errs = append(errs, a.clients.Close())
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.otelShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.otelShutdown(shutdownCtx))
		cancel()
	}
	if err := errors.Join(errs...); err != nil {
		a.Log.Warn("shutdown finished with errors", "error", err)
	}
	a.Log.Sync()
}
