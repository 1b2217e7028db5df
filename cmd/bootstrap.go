package cmd

import (
	"context"
	"fmt"

	"refcheck/core/config"
	"refcheck/core/database"
	"refcheck/core/logger"
	"refcheck/core/refindex"
	"refcheck/core/storage"
	"refcheck/feature/probe"
	"refcheck/feature/refindex/refresh"
	"refcheck/feature/refindex/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// configDir is where LoadConfig looks for a .env file.
var configDir = "."

// runtime bundles the collaborators shared by the commands.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	store     *store.Store
	refresher *refresh.CommandRefresher
}

// bootstrap loads the configuration and connects to the reference index database.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &runtime{
		cfg:       cfg,
		logger:    l,
		db:        db,
		store:     store.New(db, cfg.Index, l),
		refresher: refresh.New(cfg.Refresh, l),
	}, nil
}

// prober builds the existence prober for the configured content backend. It
// fails when the content root or bucket cannot be reached.
func (rt *runtime) prober(ctx context.Context) (refindex.Prober, error) {
	var client storage.Client
	if rt.cfg.Content.Backend == probe.BackendS3 {
		c, err := storage.NewClient(rt.cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		client = c
	}
	return probe.New(ctx, rt.cfg.Content, client, rt.cfg.Storage.Bucket, rt.logger)
}

// reconciler wires the store, the prober and, when configured, the refresher.
func (rt *runtime) reconciler(ctx context.Context) (*refindex.Reconciler, error) {
	p, err := rt.prober(ctx)
	if err != nil {
		return nil, err
	}

	opts := []refindex.Option{
		refindex.WithLogger(rt.logger),
		refindex.WithExcludes(rt.cfg.Content.Exclude),
	}
	if rt.refresher.Configured() {
		opts = append(opts, refindex.WithRefresher(rt.refresher))
	}
	return refindex.NewReconciler(rt.store, p, opts...), nil
}

func (rt *runtime) close() {
	_ = rt.logger.Sync()
	if sqlDB, err := rt.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
