// Package application wires configuration, infrastructure and transport into
// the running service.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"rate_audit/internal/config"
	"rate_audit/internal/domain/service/evaluation"
	"rate_audit/internal/domain/service/rates"
	"rate_audit/internal/infrastructure/bcb"
	"rate_audit/internal/infrastructure/ratecache"
	"rate_audit/internal/server"
	"rate_audit/internal/worker"
	"rate_audit/pkg/application/connectors"
	"rate_audit/pkg/application/modules"
	"rate_audit/pkg/contextx"
	"rate_audit/pkg/httpx"
	"rate_audit/pkg/logx"
	"rate_audit/pkg/middlewarex"
	"rate_audit/pkg/probe"
)

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run serves the API, probe and metrics endpoints until ctx is cancelled or
// one of them fails.
func Run(ctx context.Context, cfg config.Config) error {
	provider, err := NewRateProvider(cfg)
	if err != nil {
		return fmt.Errorf("NewRateProvider: %w", err)
	}

	var checks []probe.ReadinessCheck

	if cfg.Rates.CacheEnabled() {
		cache, check, closeCache, err := newRateCache(ctx, cfg)
		if err != nil {
			return fmt.Errorf("newRateCache: %w", err)
		}
		defer closeCache()

		provider.WithCache(cache)

		if check != nil {
			checks = append(checks, check)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	srv := server.NewServer(
		server.NewEvaluationServer(evaluation.NewService(provider)),
		server.NewRateServer(provider),
	)

	modules.HTTPServer{ShutdownTimeout: cfg.App.ShutdownTimeout}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.App.HTTPAddress,
		Handler:           newRouter(srv, cfg.App.RequestLogFieldLimit),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeAddress,
		Checks:        checks,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.App.MetricsAddress,
		Version:       cfg.App.Version,
	}.Run(ctx, g)

	if cfg.Rates.RefreshEnabled() {
		warmer := worker.NewRateWarmer(provider, cfg.Rates.RefreshInterval)

		g.Go(func() error {
			return warmer.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	return nil
}

// NewRateProvider builds the reference-rate provider without a cache.
func NewRateProvider(cfg config.Config) (*rates.Provider, error) {
	sources := rates.DefaultSources(cfg.Rates.PayrollMonthly, cfg.Rates.PrivatePayrollMonthly)

	if cfg.Rates.SourcesFile != "" {
		var err error

		sources, err = rates.LoadSources(cfg.Rates.SourcesFile, sources)
		if err != nil {
			return nil, fmt.Errorf("rates.LoadSources: %w", err)
		}
	}

	httpClient := httpx.NewClient(
		cfg.BCB.Timeout,
		httpx.WithLogFieldMaxLen(cfg.App.RequestLogFieldLimit),
		httpx.WithTracePropagation(),
	)

	return rates.NewProvider(sources, bcb.NewClient(cfg.BCB.BaseURL, httpClient)), nil
}

func newRateCache(ctx context.Context, cfg config.Config) (rates.Cache, probe.ReadinessCheck, func(), error) {
	if !cfg.Redis.Enabled() {
		logger(ctx).Info("using in-memory rate cache", slog.Duration("ttl", cfg.Rates.CacheTTL))

		return ratecache.NewMemory(cfg.Rates.CacheTTL), nil, func() {}, nil
	}

	conn := &connectors.Redis{
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		Address:            cfg.Redis.Address,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConns,
		MaxIdleConnections: cfg.Redis.MaxIdleConns,
	}

	client, err := conn.Client(ctx)
	if err != nil {
		conn.Close(ctx)
		return nil, nil, nil, fmt.Errorf("connectors.Redis.Client: %w", err)
	}

	return ratecache.NewRedis(client, cfg.Rates.CacheTTL), conn.Ping, func() { conn.Close(ctx) }, nil
}

func newRouter(srv server.Server, logFieldMaxLen int) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
		middlewarex.Recovery,
	)

	srv.RegisterRoutes(router)

	return router
}
