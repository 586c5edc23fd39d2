// Package extract orchestrates the per-entity pipeline: windowed fetch,
// optional detail enrichment, flattening and chunked upserts.
package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wms-data/wms-etl/pkg/client"
	"github.com/wms-data/wms-etl/pkg/fanout"
	"github.com/wms-data/wms-etl/pkg/flatten"
	"github.com/wms-data/wms-etl/pkg/store"
	"github.com/wms-data/wms-etl/pkg/window"
)

// Fetcher is the WMS API surface the driver needs.
type Fetcher interface {
	FetchAll(ctx context.Context, entity string, params map[string]string) ([]client.Record, error)
	FetchDetail(ctx context.Context, entity string, id any) (client.Record, error)
}

// Sink is the storage surface the driver needs.
type Sink interface {
	Upsert(ctx context.Context, table string, columns []string, rows []map[string]any, pk string) (int, error)
}

// Definition declares everything needed to extract one entity.
type Definition struct {
	// Entity is the WMS API entity name.
	Entity string

	// Table is the destination table, optionally schema-qualified.
	Table string

	// PrimaryKey is the conflict column for upserts.
	PrimaryKey string

	// Columns is the full destination column set, in insert order.
	Columns []string

	// Schema coerces raw values to database types.
	Schema flatten.Schema

	// Windows selects the extraction window and its fallback.
	Windows window.Policy

	// FetchDetails enables per-record detail enrichment.
	FetchDetails bool

	// DetailConcurrency bounds concurrent detail fetches.
	DetailConcurrency int
}

// Options carries run-wide settings.
type Options struct {
	// ChunkSize is the upsert batch size; defaults to 500.
	ChunkSize int

	// Now overrides the clock, for tests.
	Now func() time.Time
}

const defaultChunkSize = 500

// Run executes the full pipeline for one entity and returns the number of
// rows upserted. Rows written by chunks committed before a failure are
// counted in the returned total even when an error is also returned.
func (d Definition) Run(ctx context.Context, f Fetcher, s Sink, opts Options) (int, error) {
	logger := log.With().Str("entity", d.Entity).Str("table", d.Table).Logger()

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	chunkSize := opts.ChunkSize
	if chunkSize < 1 {
		chunkSize = defaultChunkSize
	}

	records, err := d.fetchWindowed(ctx, f, now())
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", d.Entity, err)
	}
	if len(records) == 0 {
		logger.Info().Msg("No records in any window, nothing to load")
		return 0, nil
	}
	logger.Info().Int("records", len(records)).Msg("Fetched summary records")

	if d.FetchDetails {
		records = d.enrich(ctx, f, records)
	}

	rows := make([]map[string]any, len(records))
	for i, rec := range records {
		rows[i] = flatten.Conform(d.Schema.Apply(flatten.One(rec)), d.Columns)
	}

	total := 0
	for _, chunk := range store.Chunk(rows, chunkSize) {
		n, err := s.Upsert(ctx, d.Table, d.Columns, chunk, d.PrimaryKey)
		total += n
		if err != nil {
			return total, fmt.Errorf("upsert %s: %w", d.Entity, err)
		}
	}

	logger.Info().Int("rows", total).Msg("Entity load complete")
	return total, nil
}

// fetchWindowed fetches the primary window, falling back to the wider window
// when the primary yields nothing. A 404 means "no data", not failure.
func (d Definition) fetchWindowed(ctx context.Context, f Fetcher, now time.Time) ([]client.Record, error) {
	logger := log.With().Str("entity", d.Entity).Logger()

	records, err := fetchIgnoringNotFound(ctx, f, d.Entity, d.Windows.Primary.Params(now))
	if err != nil {
		return nil, err
	}
	if len(records) > 0 || d.Windows.Fallback == nil {
		return records, nil
	}

	logger.Warn().
		Str("window", d.Windows.Primary.String()).
		Str("fallback", d.Windows.Fallback.String()).
		Msg("Primary window empty, trying fallback")

	return fetchIgnoringNotFound(ctx, f, d.Entity, d.Windows.Fallback.Params(now))
}

func fetchIgnoringNotFound(ctx context.Context, f Fetcher, entity string, params map[string]string) ([]client.Record, error) {
	records, err := f.FetchAll(ctx, entity, params)
	if err != nil {
		var nf *client.NotFoundError
		if errors.As(err, &nf) {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

// enrich replaces each summary record with its detail payload where a
// non-empty one can be fetched; failures, empty payloads and records without
// an id keep the summary.
func (d Definition) enrich(ctx context.Context, f Fetcher, records []client.Record) []client.Record {
	ids := make([]any, len(records))
	for i, rec := range records {
		ids[i] = rec["id"]
	}

	limit := d.DetailConcurrency
	if limit < 1 {
		limit = 1
	}

	details := fanout.Fetch(ctx, ids, limit, func(ctx context.Context, id any) (map[string]any, error) {
		if id == nil {
			return nil, nil
		}
		return f.FetchDetail(ctx, d.Entity, id)
	})

	merged := make([]client.Record, len(records))
	for i, rec := range records {
		if len(details[i]) > 0 {
			merged[i] = details[i]
		} else {
			merged[i] = rec
		}
	}
	return merged
}
