// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/mantra/internal/api"
	"github.com/tomtom215/mantra/internal/cache"
	"github.com/tomtom215/mantra/internal/config"
	"github.com/tomtom215/mantra/internal/events"
	"github.com/tomtom215/mantra/internal/logging"
	"github.com/tomtom215/mantra/internal/metrics"
	"github.com/tomtom215/mantra/internal/middleware"
	"github.com/tomtom215/mantra/internal/moderation"
	"github.com/tomtom215/mantra/internal/recommend"
	"github.com/tomtom215/mantra/internal/store"
	"github.com/tomtom215/mantra/internal/supervisor"
	"github.com/tomtom215/mantra/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	perfMonitorCapacity = 1000
	slowRequestLimit    = time.Second
)

// components are the long-lived collaborators built at startup.
type components struct {
	store        store.Store
	cache        cache.Store
	moderation   *moderation.Engine
	orchestrator *recommend.Orchestrator
	publisher    *events.Publisher
	notifier     *events.Notifier
}

// close releases the store and cache. The publisher is closed by its
// supervised service.
func (c *components) close() {
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			logging.Error().Err(err).Str("backend", c.cache.Name()).Msg("Error closing cache")
		}
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}
}

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.ToLogging())

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("store_driver", cfg.Database.Driver).
		Str("cache_backend", string(cfg.Cache.Backend)).
		Bool("events_enabled", cfg.Events.Enabled).
		Msg("Starting Mantra with supervisor tree")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Mantra stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := buildComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer comps.close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Recommend.TrainInterval > 0 {
		tree.AddDataService(services.NewTrainerService(comps.orchestrator, services.TrainerConfig{
			TrainOnStartup: true,
			Interval:       cfg.Recommend.TrainInterval,
		}, logging.WithComponent("trainer")))
		logging.Info().Dur("interval", cfg.Recommend.TrainInterval).Msg("Neighbour model training scheduled")
	} else {
		logging.Info().Msg("Background training disabled, neighbour model is fitted per request")
	}

	if comps.publisher != nil {
		tree.AddMessagingService(events.NewService(comps.publisher))
	}

	server, err := newHTTPServer(cfg, comps)
	if err != nil {
		return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	<-ctx.Done()
	logging.Info().Msg("Shutdown signal received, stopping services")

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err != nil {
		logging.Warn().Err(err).Msg("Could not build unstopped service report")
	} else {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}
	return nil
}

// buildComponents opens the store and cache and builds the engines. On
// error everything opened so far is closed.
func buildComponents(ctx context.Context, cfg *config.Config) (_ *components, err error) {
	comps := &components{}
	defer func() {
		if err != nil {
			comps.close()
		}
	}()

	comps.store, err = store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logging.Info().
		Str("driver", cfg.Database.Driver).
		Bool("seeded", cfg.Database.Seed).
		Msg("Store initialized successfully")

	comps.cache, err = cache.New(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	logging.Info().Str("backend", comps.cache.Name()).Msg("Cache initialized")

	comps.moderation, err = moderation.NewEngine(cfg.Moderation, moderation.WithCache(comps.cache))
	if err != nil {
		return nil, fmt.Errorf("create moderation engine: %w", err)
	}

	comps.orchestrator, err = recommend.NewOrchestrator(cfg.Recommend, cfg.Trending, comps.store,
		recommend.WithCache(comps.cache))
	if err != nil {
		return nil, fmt.Errorf("create recommendation orchestrator: %w", err)
	}

	if !cfg.Events.Enabled {
		logging.Info().Msg("Flag notifications disabled (EVENTS_ENABLED=false)")
		return comps, nil
	}

	comps.publisher, err = events.NewPublisher(cfg.Events)
	if err != nil {
		return nil, fmt.Errorf("create flag event publisher: %w", err)
	}
	comps.notifier, err = events.NewNotifier(cfg.Events, comps.publisher)
	if err != nil {
		_ = comps.publisher.Close()
		return nil, fmt.Errorf("create flag notifier: %w", err)
	}
	logging.Info().
		Str("backend", comps.publisher.Backend()).
		Str("topic", cfg.Events.Topic).
		Msg("Flag notifications enabled")
	return comps, nil
}

// newHTTPServer assembles the handler, router and middleware stack.
func newHTTPServer(cfg *config.Config, comps *components) (*http.Server, error) {
	deps := api.Deps{
		Store:        comps.store,
		Moderation:   comps.moderation,
		Recommend:    comps.orchestrator,
		PerfMon:      middleware.NewPerformanceMonitor(perfMonitorCapacity, slowRequestLimit),
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}
	// A typed nil would defeat the handler's nil check.
	if comps.notifier != nil {
		deps.Notifier = comps.notifier
	}

	handler, err := api.NewHandler(deps)
	if err != nil {
		return nil, fmt.Errorf("create API handler: %w", err)
	}

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Server.RateLimitRequests
	mwConfig.RateLimitWindow = cfg.Server.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Server.RateLimitDisabled
	if cfg.IsProduction() && slices.Contains(cfg.Server.CORSOrigins, "*") {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	router := api.NewRouter(handler, api.NewChiMiddleware(mwConfig))

	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}, nil
}
