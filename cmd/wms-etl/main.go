package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/wms-data/wms-etl/internal/extract"
	"github.com/wms-data/wms-etl/pkg/client"
	"github.com/wms-data/wms-etl/pkg/config"
	"github.com/wms-data/wms-etl/pkg/logging"
	"github.com/wms-data/wms-etl/pkg/runlock"
	"github.com/wms-data/wms-etl/pkg/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup(logging.DefaultConfig())
		l := logging.NewLogger("wms-etl")
		l.Fatal().Err(err).Msg("Configuration invalid")
	}

	logging.Setup(logging.Config{Level: logging.LogLevel(cfg.Log.Level), Pretty: cfg.Log.Pretty})
	logger := logging.NewLogger("wms-etl")

	// os.Exit skips defers, so everything holding resources (run lock, pool)
	// lives in run and main exits only after run's defers fired.
	os.Exit(run(context.Background(), cfg, logger))
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) int {
	logger.Info().Msg("Starting WMS data extraction")

	// Optional run lock: overlapping cron runs would double-fetch and race
	// on the same upsert targets.
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Error().Err(err).Msg("Invalid Redis URL")
			return 1
		}
		rdb := redis.NewClient(opts)
		lock := runlock.New(rdb, "wms-etl:run", cfg.Redis.LockTTL)
		if err := lock.Acquire(ctx); err != nil {
			if err == runlock.ErrHeld {
				logger.Warn().Msg("Another extraction run is in progress, exiting")
				return 0
			}
			logger.Error().Err(err).Msg("Failed to acquire run lock")
			return 1
		}
		defer func() {
			if err := lock.Release(ctx); err != nil {
				logger.Warn().Err(err).Msg("Failed to release run lock")
			}
		}()
	}

	pool, err := store.NewPool(ctx, cfg.DB)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return 1
	}
	defer pool.Close()

	clientCfg := client.DefaultConfig(cfg.WMS.BaseURL, cfg.WMS.Username, cfg.WMS.Password)
	clientCfg.VerifySSL = cfg.WMS.VerifySSL
	clientCfg.Timeout = cfg.WMS.Timeout
	clientCfg.PageSize = cfg.ETL.PageSize
	clientCfg.Retry.MaxAttempts = cfg.WMS.Retries

	wms, err := client.New(clientCfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create WMS client")
		return 1
	}

	sink := store.NewSink(pool)
	opts := extract.Options{ChunkSize: cfg.ETL.ChunkSize}

	failed := 0
	for _, def := range extract.All() {
		if def.FetchDetails && cfg.ETL.DetailConcurrency > 0 {
			def.DetailConcurrency = cfg.ETL.DetailConcurrency
		}
		start := time.Now()
		total, err := def.Run(ctx, wms, sink, opts)
		if err != nil {
			failed++
			logger.Error().
				Err(err).
				Str("entity", def.Entity).
				Int("rows", total).
				Msg("Entity extraction failed")
			if !cfg.ETL.ContinueOnError {
				return 1
			}
			continue
		}
		logger.Info().
			Str("entity", def.Entity).
			Int("rows", total).
			Dur("elapsed", time.Since(start)).
			Msg("Entity processed")
	}

	if failed > 0 {
		logger.Error().Int("failed", failed).Msg("Extraction finished with failures")
		return 1
	}
	logger.Info().Msg("Extraction finished successfully")
	return 0
}
