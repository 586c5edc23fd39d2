// Package fanout runs bounded-concurrency detail lookups while preserving
// input order in the result slice.
package fanout

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	detailFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wms_detail_fetches_total",
		Help: "Total detail fetches by outcome",
	}, []string{"outcome"})

	detailInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wms_detail_fetches_in_flight",
		Help: "Detail fetches currently in flight",
	})
)

// FetchFunc fetches the detail payload for a single record id.
type FetchFunc func(ctx context.Context, id any) (map[string]any, error)

// Fetch runs fn for every id with at most limit concurrent calls and returns
// results positionally: out[i] is the detail for ids[i], or nil when the fetch
// failed. A failed fetch is logged and never aborts the batch; the caller
// decides how to degrade. limit <= 1 runs strictly sequentially.
func Fetch(ctx context.Context, ids []any, limit int, fn FetchFunc) []map[string]any {
	out := make([]map[string]any, len(ids))
	if len(ids) == 0 {
		return out
	}

	logger := log.With().Str("component", "fanout").Logger()

	if limit <= 1 {
		for i, id := range ids {
			out[i] = fetchOne(ctx, id, fn, logger)
		}
		return out
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id any) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			out[i] = fetchOne(ctx, id, fn, logger)
		}(i, id)
	}

	wg.Wait()
	return out
}

func fetchOne(ctx context.Context, id any, fn FetchFunc, logger zerolog.Logger) map[string]any {
	if ctx.Err() != nil {
		detailFetchesTotal.WithLabelValues("cancelled").Inc()
		return nil
	}

	detailInFlight.Inc()
	defer detailInFlight.Dec()

	detail, err := fn(ctx, id)
	if err != nil {
		detailFetchesTotal.WithLabelValues("error").Inc()
		logger.Warn().
			Err(err).
			Interface("id", id).
			Msg("Detail fetch failed, keeping summary record")
		return nil
	}

	detailFetchesTotal.WithLabelValues("ok").Inc()
	return detail
}
