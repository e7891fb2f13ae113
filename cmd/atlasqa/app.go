package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"atlasqa/internal/browser"
	"atlasqa/internal/countries/client"
	"atlasqa/internal/load"
	"atlasqa/internal/platform/config"
	"atlasqa/internal/platform/logger"
	"atlasqa/internal/platform/metrics"
	"atlasqa/internal/platform/postgres"
	"atlasqa/internal/platform/redis"
	"atlasqa/internal/report"
	"atlasqa/internal/report/publisher"
	"atlasqa/internal/report/store/memory"
	pgstore "atlasqa/internal/report/store/postgres"
	redisstore "atlasqa/internal/report/store/redis"
	"atlasqa/internal/sport"
	"atlasqa/internal/suite"
	httptransport "atlasqa/internal/transport/http"
)

// app holds everything the commands share. Optional backends stay nil when
// their configuration is empty.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	client  *client.Client
	memory  *memory.InMemoryStore
	redis   *redis.Client
	db      *postgres.DB
	pub     *publisher.Publisher
	runner  *suite.Runner
}

// newApp connects the configured backends and builds the suite runner.
// runnerOpts are applied after the defaults.
func newApp(ctx context.Context, cfg config.Config, runnerOpts ...suite.Option) (*app, error) {
	log := logger.New(cfg.Log)
	m := metrics.New()
	a := &app{
		cfg:     cfg,
		logger:  log,
		metrics: m,
		client:  client.New(cfg.API.BaseURL, client.WithLogger(log), client.WithMetrics(m)),
		memory:  memory.NewInMemoryStore(),
	}

	recOpts := []report.RecorderOption{
		report.WithLogger(log),
		report.WithMetrics(m),
		report.WithStore(a.memory),
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect report cache: %w", err)
	}
	if rc != nil {
		a.redis = rc
		recOpts = append(recOpts, report.WithStore(redisstore.New(rc.Client)))
	}

	db, err := postgres.Open(ctx, cfg.DB)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect run history: %w", err)
	}
	if db != nil {
		a.db = db
		history := pgstore.New(db.DB)
		if err := history.Migrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate run history: %w", err)
		}
		recOpts = append(recOpts, report.WithStore(history))
	}

	pub, err := publisher.New(ctx, cfg.Kafka, publisher.WithLogger(log))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect findings stream: %w", err)
	}
	if pub != nil {
		a.pub = pub
		recOpts = append(recOpts, report.WithPublisher(pub))
	}

	opts := []suite.Option{
		suite.WithLogger(log),
		suite.WithMetrics(m),
		suite.WithRecorder(report.NewRecorder(recOpts...)),
		suite.WithStrict(cfg.Strict),
		suite.WithExpectedCountries(cfg.ExpectedCountries),
		suite.WithFixtures(cfg.Browser.UseFixtures),
		suite.WithLoadRunner(load.New(cfg.API.BaseURL, load.WithLogger(log), load.WithMetrics(m))),
		suite.WithPageOpener(browser.NewLauncher(cfg.Browser, browser.WithLogger(log))),
		suite.WithSportOptions(sport.WithScreenshotDir(cfg.Browser.ScreenshotDir)),
	}
	a.runner = suite.New(a.client, append(opts, runnerOpts...)...)
	return a, nil
}

// reportStore is what serve reads from: the history database when present,
// then the cache, then this process's memory.
func (a *app) reportStore() report.Store {
	switch {
	case a.db != nil:
		return pgstore.New(a.db.DB)
	case a.redis != nil:
		return redisstore.New(a.redis.Client)
	default:
		return a.memory
	}
}

// probes lists the readiness checks of every configured dependency.
func (a *app) probes() []httptransport.Option {
	opts := []httptransport.Option{
		httptransport.WithProbe("countries_api", a.client.Health),
	}
	if a.redis != nil {
		opts = append(opts, httptransport.WithProbe("redis", a.redis.Health))
	}
	if a.db != nil {
		opts = append(opts, httptransport.WithProbe("postgres", a.db.Health))
	}
	return opts
}

// Close releases every backend connection.
func (a *app) Close() error {
	var errs []error
	if a.pub != nil {
		a.pub.Close()
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
