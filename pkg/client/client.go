// Package client provides the WMS REST API client with pagination, retry,
// and error classification.
package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for WMS client operations.
var (
	wmsRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wms_requests_total",
		Help: "Total WMS requests by entity and status",
	}, []string{"entity", "status"})

	wmsRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wms_request_duration_seconds",
		Help:    "WMS request duration in seconds by entity",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"entity"})

	wmsErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wms_errors_total",
		Help: "Total WMS errors by class",
	}, []string{"class"})
)

// Record is one raw WMS entity payload as decoded from JSON.
type Record = map[string]any

// Config holds the client configuration.
type Config struct {
	// BaseURL of the WMS API, without trailing slash.
	BaseURL string

	// Basic auth credentials.
	Username string
	Password string

	// VerifySSL toggles TLS certificate verification.
	VerifySSL bool

	// Timeout per HTTP call.
	Timeout time.Duration

	// PageSize used by FetchAll.
	PageSize int

	// Retry configuration for transient failures.
	Retry RetryConfig
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL, username, password string) Config {
	return Config{
		BaseURL:   baseURL,
		Username:  username,
		Password:  password,
		VerifySSL: true,
		Timeout:   30 * time.Second,
		PageSize:  200,
		Retry:     DefaultRetryConfig(),
	}
}

// Client is the WMS API client.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a new WMS client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("client requires base URL, username and password")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 200
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	transport := http.DefaultTransport
	if !cfg.VerifySSL {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config: cfg,
		logger: log.With().Str("component", "wms-client").Logger(),
	}, nil
}

// FetchPage fetches a single page of entity summaries. The second return
// reports whether another page likely exists: the API has no explicit "next"
// indicator, so a full page means "keep going".
func (c *Client) FetchPage(ctx context.Context, entity string, params map[string]string, page, pageSize int) ([]Record, bool, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("page_size", fmt.Sprintf("%d", pageSize))

	body, err := c.get(ctx, entity, c.config.BaseURL+"/entity/"+entity, query)
	if err != nil {
		return nil, false, err
	}

	records, err := decodeList(body)
	if err != nil {
		return nil, false, &RequestError{
			Class:   ErrorClassClient,
			Message: fmt.Sprintf("malformed response for entity %s page %d", entity, page),
			Err:     err,
		}
	}

	return records, len(records) == pageSize, nil
}

// FetchAll fetches every page of an entity matching params, sequentially.
// Page N+1 is requested only after page N completed; order across calls is
// whatever the API returns and callers must not rely on it.
func (c *Client) FetchAll(ctx context.Context, entity string, params map[string]string) ([]Record, error) {
	var items []Record
	page := 1
	for {
		records, hasMore, err := c.FetchPage(ctx, entity, params, page, c.config.PageSize)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			break
		}
		items = append(items, records...)
		if !hasMore {
			break
		}
		page++
	}

	c.logger.Debug().
		Str("entity", entity).
		Int("pages", page).
		Int("records", len(items)).
		Msg("Pagination complete")

	return items, nil
}

// FetchDetail fetches the full payload of one record. Enrichment callers
// treat any error as "no detail" and fall back to the summary.
func (c *Client) FetchDetail(ctx context.Context, entity string, id any) (Record, error) {
	body, err := c.get(ctx, entity, fmt.Sprintf("%s/entity/%s/%v", c.config.BaseURL, entity, id), nil)
	if err != nil {
		return nil, err
	}

	record, err := decodeDetail(body)
	if err != nil {
		return nil, &RequestError{
			Class:   ErrorClassClient,
			Message: fmt.Sprintf("malformed detail response for %s/%v", entity, id),
			Err:     err,
		}
	}
	return record, nil
}

// get performs one GET with retry and returns the response body.
func (c *Client) get(ctx context.Context, entity, rawURL string, query url.Values) ([]byte, error) {
	start := time.Now()
	defer func() {
		wmsRequestDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds())
	}()

	var body []byte
	err := retryWithBackoff(ctx, c.config.Retry, c.logger, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return &RequestError{Class: ErrorClassClient, Message: "create request", Err: err}
		}
		if query != nil {
			req.URL.RawQuery = query.Encode()
		}
		req.SetBasicAuth(c.config.Username, c.config.Password)
		req.Header.Set("Accept", "application/json")

		resp, reqErr := c.httpClient.Do(req)
		if reqErr != nil {
			wmsErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			wmsRequestsTotal.WithLabelValues(entity, "network_error").Inc()
			return &RequestError{Class: ErrorClassNetwork, Message: "request failed", Err: reqErr}
		}
		defer resp.Body.Close()

		wmsRequestsTotal.WithLabelValues(entity, fmt.Sprintf("%d", resp.StatusCode)).Inc()

		if resp.StatusCode == http.StatusNotFound {
			return &NotFoundError{Entity: entity, URL: req.URL.String()}
		}
		if resp.StatusCode >= 400 {
			class := classifyStatus(resp.StatusCode)
			wmsErrorsTotal.WithLabelValues(string(class)).Inc()
			return &RequestError{
				StatusCode: resp.StatusCode,
				Class:      class,
				Message:    resp.Status,
			}
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return &RequestError{Class: ErrorClassNetwork, Message: "read body", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// decodeList handles the three list envelope shapes the WMS API produces:
// {"results": [...]}, {"result": [...]}, or a bare array.
func decodeList(body []byte) ([]Record, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, key := range []string{"results", "result"} {
			raw, ok := envelope[key]
			if !ok {
				continue
			}
			var records []Record
			if err := json.Unmarshal(raw, &records); err != nil {
				// "result" may hold a single object on detail endpoints;
				// for list decoding a non-array envelope value is empty data.
				continue
			}
			return records, nil
		}
		return nil, nil
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// decodeDetail handles {"result": {...}} or a bare object.
func decodeDetail(body []byte) (Record, error) {
	var record Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, err
	}
	if nested, ok := record["result"].(map[string]any); ok {
		return nested, nil
	}
	return record, nil
}
