package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/addressbook-backend/internal/data/kv"
	apphttp "github.com/yungbote/addressbook-backend/internal/http"
	"github.com/yungbote/addressbook-backend/internal/observability"
	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    kv.Store
	Repos    Repos
	Services Services
	Server   *apphttp.Server
	Metrics  *observability.Metrics

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init(log, cfg.MetricsEnabled)

	store, err := wireStore(ctx, log, cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}

	reposet := wireRepos(store, log)
	serviceset := wireServices(log, reposet, metrics)
	handlerset := wireHandlers(log, serviceset, store)

	server, err := wireServer(log, cfg, handlerset, metrics)
	if err != nil {
		_ = store.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}

	if path := strings.TrimSpace(cfg.SeedFile); path != "" {
		inputs, err := LoadSeed(path)
		if err != nil {
			_ = store.Close()
			_ = otelShutdown(ctx)
			return nil, err
		}
		n, err := Seed(ctx, log, serviceset.Contact, inputs)
		if err != nil {
			_ = store.Close()
			_ = otelShutdown(ctx)
			return nil, err
		}
		log.Info("contacts seeded", "file", path, "created", n, "total", len(inputs))
	}

	return &App{
		Log:          log,
		Cfg:          cfg,
		Store:        store,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		Metrics:      metrics,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches background collectors. It is a no-op when already started.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.Metrics.StartStoreCollector(ctx, a.Log, a.Cfg.StoreBackend, a.Store, 0)
}

// Run serves HTTP (and metrics when enabled) until ctx is cancelled or a
// SIGINT/SIGTERM arrives, then shuts down within Cfg.ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("server listening", "port", a.Cfg.Port, "backend", a.Cfg.StoreBackend)
		return a.Server.Run()
	})
	if a.Metrics != nil {
		g.Go(func() error {
			return a.Metrics.StartServer(gctx, a.Log, a.Cfg.MetricsAddr)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("shutting down", "timeout", a.Cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil && a.Log != nil {
			a.Log.Warn("close contact store", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
