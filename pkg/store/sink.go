package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	rowsUpsertedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wms_rows_upserted_total",
		Help: "Total rows upserted by table",
	}, []string{"table"})

	upsertDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wms_upsert_duration_seconds",
		Help:    "Upsert batch duration in seconds by table",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 15},
	}, []string{"table"})

	upsertFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wms_upsert_failures_total",
		Help: "Total failed upsert batches by table",
	}, []string{"table"})
)

// Sink writes row batches into Postgres tables.
type Sink struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSink creates a sink over an existing pool.
func NewSink(pool *pgxpool.Pool) *Sink {
	return &Sink{
		pool:   pool,
		logger: log.With().Str("component", "store").Logger(),
	}
}

// Upsert writes rows into table inside one transaction. Conflicts on pk
// update every other column from the incoming row, so replaying a batch is
// idempotent. Returns the number of rows written.
func (s *Sink) Upsert(ctx context.Context, table string, columns []string, rows []map[string]any, pk string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	start := time.Now()
	query := buildUpsertQuery(table, columns, pk)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		upsertFailuresTotal.WithLabelValues(table).Inc()
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, row := range rows {
		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = row[col]
		}
		batch.Queue(query, args...)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range rows {
		if _, err := results.Exec(); err != nil {
			results.Close()
			upsertFailuresTotal.WithLabelValues(table).Inc()
			return 0, fmt.Errorf("upsert row %d into %s: %w", i, table, err)
		}
	}
	if err := results.Close(); err != nil {
		upsertFailuresTotal.WithLabelValues(table).Inc()
		return 0, fmt.Errorf("close batch for %s: %w", table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		upsertFailuresTotal.WithLabelValues(table).Inc()
		return 0, fmt.Errorf("commit upsert into %s: %w", table, err)
	}

	rowsUpsertedTotal.WithLabelValues(table).Add(float64(len(rows)))
	upsertDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())

	s.logger.Debug().
		Str("table", table).
		Int("rows", len(rows)).
		Msg("Batch upserted")

	return len(rows), nil
}

// buildUpsertQuery renders INSERT ... ON CONFLICT DO UPDATE for one row.
// Identifiers are quote-sanitized via pgx; schema-qualified table names keep
// their qualification.
func buildUpsertQuery(table string, columns []string, pk string) string {
	cols := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	var updates []string

	for i, col := range columns {
		quoted := pgx.Identifier{col}.Sanitize()
		cols[i] = quoted
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col != pk {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", quoted, quoted))
		}
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		quoteTable(table),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		pgx.Identifier{pk}.Sanitize(),
		strings.Join(updates, ", "),
	)
}

func quoteTable(table string) string {
	parts := strings.Split(table, ".")
	return pgx.Identifier(parts).Sanitize()
}

// Chunk splits items into consecutive slices of at most n elements.
func Chunk[T any](items []T, n int) [][]T {
	if n < 1 {
		n = 1
	}
	var chunks [][]T
	for start := 0; start < len(items); start += n {
		end := start + n
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
