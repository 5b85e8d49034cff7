package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/danielhkuo/repwatch/alignment"
	"github.com/danielhkuo/repwatch/cliparse"
	"github.com/danielhkuo/repwatch/db"
	"github.com/danielhkuo/repwatch/ingest"
	"github.com/danielhkuo/repwatch/issues"
	"github.com/danielhkuo/repwatch/metrics"
	"github.com/danielhkuo/repwatch/preferences"
	"github.com/danielhkuo/repwatch/recent"
	"github.com/danielhkuo/repwatch/store"
)

// app holds the wired services shared by every command.
type app struct {
	clock      clockwork.Clock
	store      store.Store
	classifier *issues.Classifier
	recent     recent.Tracker
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	engine     *alignment.Engine
	prefs      *preferences.Service
	ingester   *ingest.Ingester

	conn *sql.DB
	rdb  *goredis.Client
}

func newApp(ctx context.Context, cfg cliparse.Config) (*app, error) {
	a := &app{clock: clockwork.NewRealClock()}

	classifier, err := issues.Load(cfg.TaxonomyFile)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	a.classifier = classifier

	if cfg.DatabaseType == cliparse.DatabaseMemory {
		a.store = store.NewMemory(a.clock)
		slog.Warn("using in-memory store; data is lost on exit")
	} else {
		conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		a.conn = conn

		if err := db.CreateSchema(conn); err != nil {
			a.Close()
			return nil, fmt.Errorf("schema creation failed: %w", err)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
		a.store = store.NewSQL(conn, a.clock)
	}

	if cfg.RedisURL != "" {
		rdb, err := recent.Connect(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		a.rdb = rdb
		a.recent = recent.NewRedis(rdb, a.clock)
	} else {
		a.recent = recent.NewMemory(a.clock)
	}

	a.registry = metrics.NewRegistry()
	a.metrics = metrics.New(a.registry)

	scale := cfg.Scale()
	a.engine = alignment.NewEngine(a.store, a.store, a.classifier, scale, a.clock).WithMetrics(a.metrics.Alignment)
	a.prefs = preferences.NewService(a.store, a.store, scale).WithMetrics(a.metrics.Preferences)
	a.ingester = ingest.NewIngester(a.store).WithMetrics(a.metrics.Ingest)

	return a, nil
}

// Close releases the database and Redis connections.
func (a *app) Close() error {
	var errs []error
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.conn != nil {
		errs = append(errs, a.conn.Close())
	}
	return errors.Join(errs...)
}
