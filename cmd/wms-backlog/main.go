// wms-backlog replays historical extraction windows one day at a time and
// appends the flattened rows to per-entity CSV files, ready for dbt seed.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/wms-data/wms-etl/internal/extract"
	"github.com/wms-data/wms-etl/pkg/client"
	"github.com/wms-data/wms-etl/pkg/config"
	"github.com/wms-data/wms-etl/pkg/flatten"
	"github.com/wms-data/wms-etl/pkg/logging"
	"github.com/wms-data/wms-etl/pkg/window"
)

const timestampLayout = "2006-01-02T15:04:05"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup(logging.DefaultConfig())
		l := logging.NewLogger("wms-backlog")
		l.Fatal().Err(err).Msg("Configuration invalid")
	}

	logging.Setup(logging.Config{Level: logging.LogLevel(cfg.Log.Level), Pretty: cfg.Log.Pretty})
	logger := logging.NewLogger("wms-backlog")

	if cfg.Backlog.StartDate == "" {
		logger.Fatal().Msg("backlog.start_date is required (YYYY-MM-DD)")
	}
	start, err := time.Parse("2006-01-02", cfg.Backlog.StartDate)
	if err != nil {
		logger.Fatal().Err(err).Str("start_date", cfg.Backlog.StartDate).Msg("Invalid start date")
	}

	if err := os.MkdirAll(cfg.Backlog.OutputDir, 0o755); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create output directory")
	}

	clientCfg := client.DefaultConfig(cfg.WMS.BaseURL, cfg.WMS.Username, cfg.WMS.Password)
	clientCfg.VerifySSL = cfg.WMS.VerifySSL
	clientCfg.Timeout = cfg.WMS.Timeout
	clientCfg.PageSize = cfg.ETL.PageSize
	clientCfg.Retry.MaxAttempts = cfg.WMS.Retries

	wms, err := client.New(clientCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create WMS client")
	}

	ctx := context.Background()
	end := time.Now()
	logger.Info().
		Str("from", start.Format("2006-01-02")).
		Str("to", end.Format("2006-01-02")).
		Msg("Starting backlog export")

	for _, def := range extract.BacklogSet() {
		if err := exportEntity(ctx, wms, def, start, end, cfg.Backlog.OutputDir, logger); err != nil {
			logger.Error().Err(err).Str("entity", def.Entity).Msg("Backlog export failed")
			os.Exit(1)
		}
	}

	logger.Info().Str("dir", cfg.Backlog.OutputDir).Msg("Backlog export complete")
}

// exportEntity walks day-sized windows and appends each day's rows to the
// entity CSV. Days with no data (empty page or 404) are skipped.
func exportEntity(ctx context.Context, wms *client.Client, def extract.Definition, start, end time.Time, outDir string, logger zerolog.Logger) error {
	path := filepath.Join(outDir, def.Entity+".csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if stat.Size() == 0 {
		if err := w.Write(def.Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	total := 0
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		records, err := wms.FetchAll(ctx, def.Entity, window.Day(day))
		if err != nil {
			var nf *client.NotFoundError
			if errors.As(err, &nf) {
				logger.Warn().
					Str("entity", def.Entity).
					Str("day", day.Format("2006-01-02")).
					Msg("No data for day (404)")
				continue
			}
			return fmt.Errorf("fetch %s for %s: %w", def.Entity, day.Format("2006-01-02"), err)
		}
		if len(records) == 0 {
			continue
		}

		for _, rec := range records {
			row := flatten.Conform(def.Schema.Apply(flatten.One(rec)), def.Columns)
			cells := make([]string, len(def.Columns))
			for i, col := range def.Columns {
				cells[i] = cellString(row[col], def.Schema[col])
			}
			if err := w.Write(cells); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("flush %s: %w", path, err)
		}

		total += len(records)
		logger.Info().
			Str("entity", def.Entity).
			Str("day", day.Format("2006-01-02")).
			Int("records", len(records)).
			Msg("Day exported")
	}

	logger.Info().Str("entity", def.Entity).Int("records", total).Msg("Entity backlog exported")
	return nil
}

// cellString renders a coerced value for CSV. Nil renders empty; Date
// columns render date-only, every other time value keeps the WMS layout.
// The column kind decides, so a real midnight timestamp is not reformatted.
func cellString(v any, kind flatten.Kind) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		if kind == flatten.Date {
			return x.Format("2006-01-02")
		}
		return x.Format(timestampLayout)
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
