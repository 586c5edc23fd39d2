package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wms-data/wms-etl/internal/testutil"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig(baseURL, "etl", "secret")
	cfg.Retry = RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    10 * time.Millisecond,
		MaxBackoff:        50 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
	return cfg
}

func TestNew_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing base URL", Config{Username: "u", Password: "p"}},
		{"missing username", Config{BaseURL: "http://x", Password: "p"}},
		{"missing password", Config{BaseURL: "http://x", Username: "u"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestFetchPage_BasicAuthAndParams(t *testing.T) {
	var gotUser, gotPass string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"results": [{"id": 1}]}`)
	}))
	defer server.Close()

	c, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	params := map[string]string{"create_ts__gte": "2026-08-29T00:00:00"}
	records, hasMore, err := c.FetchPage(context.Background(), "inventory", params, 2, 100)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if gotUser != "etl" || gotPass != "secret" {
		t.Errorf("Basic auth = %s:%s, want etl:secret", gotUser, gotPass)
	}
	if got := gotQuery["page"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("page param = %v, want [2]", got)
	}
	if got := gotQuery["page_size"]; len(got) != 1 || got[0] != "100" {
		t.Errorf("page_size param = %v, want [100]", got)
	}
	if got := gotQuery["create_ts__gte"]; len(got) != 1 || got[0] != "2026-08-29T00:00:00" {
		t.Errorf("filter param = %v", got)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
	if hasMore {
		t.Error("Short page should report no more pages")
	}
}

func TestFetchAll_PaginationTerminates(t *testing.T) {
	// Pages of decreasing size down to zero; FetchAll must return exactly
	// the concatenation and stop.
	pages := [][]int{{1, 2, 3}, {4, 5}, {}}
	cfg := testConfig("")
	cfg.PageSize = 3

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		page := r.URL.Query().Get("page")
		idx := 0
		fmt.Sscanf(page, "%d", &idx)
		body := "["
		if idx >= 1 && idx <= len(pages) {
			for i, id := range pages[idx-1] {
				if i > 0 {
					body += ","
				}
				body += fmt.Sprintf(`{"id": %d}`, id)
			}
		}
		body += "]"
		fmt.Fprintf(w, `{"results": %s}`, body)
	}))
	defer server.Close()

	cfg.BaseURL = server.URL
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	records, err := c.FetchAll(context.Background(), "container", nil)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}

	if len(records) != 5 {
		t.Errorf("records = %d, want 5", len(records))
	}
	for i, want := range []float64{1, 2, 3, 4, 5} {
		if got := records[i]["id"]; got != want {
			t.Errorf("records[%d][id] = %v, want %v", i, got, want)
		}
	}
	// Page 1 full, page 2 short: exactly 2 requests.
	if n := atomic.LoadInt32(&requests); n != 2 {
		t.Errorf("requests = %d, want 2", n)
	}
}

func TestFetchAll_EnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"results envelope", `{"results": [{"id": 1}, {"id": 2}]}`, 2},
		{"result envelope", `{"result": [{"id": 1}]}`, 1},
		{"bare array", `[{"id": 1}, {"id": 2}, {"id": 3}]`, 3},
		{"null results", `{"results": null}`, 0},
		{"empty object", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			c, err := New(testConfig(server.URL))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			records, err := c.FetchAll(context.Background(), "location", nil)
			if err != nil {
				t.Fatalf("FetchAll() error = %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("records = %d, want %d", len(records), tt.want)
			}
		})
	}
}

func TestFetchAll_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.FetchAll(context.Background(), "oblpn", nil)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if nf.Entity != "oblpn" {
		t.Errorf("NotFoundError.Entity = %q, want oblpn", nf.Entity)
	}
}

func TestFetchAll_RetriesTransientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"results": [{"id": 7}]}`)
	}))
	defer server.Close()

	c, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	records, err := c.FetchAll(context.Background(), "inventory", nil)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want 3 (two failures then success)", n)
	}
}

func TestFetchAll_PermanentErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.FetchAll(context.Background(), "inventory", nil)
	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("Expected RequestError, got %v", err)
	}
	if re.Class != ErrorClassClient {
		t.Errorf("Class = %s, want client", re.Class)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want 1 (no retry for 401)", n)
	}
}

func TestFetchDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"result envelope", `{"result": {"id": 42, "curr_qty": "10.5"}}`},
		{"bare object", `{"id": 42, "curr_qty": "10.5"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			c, err := New(testConfig(server.URL))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			record, err := c.FetchDetail(context.Background(), "inventory", 42)
			if err != nil {
				t.Fatalf("FetchDetail() error = %v", err)
			}
			if gotPath != "/entity/inventory/42" {
				t.Errorf("path = %q, want /entity/inventory/42", gotPath)
			}
			if record["id"] != float64(42) {
				t.Errorf("record id = %v, want 42", record["id"])
			}
			if record["curr_qty"] != "10.5" {
				t.Errorf("record curr_qty = %v", record["curr_qty"])
			}
		})
	}
}

func TestFetchAll_AgainstMockFixtures(t *testing.T) {
	mock := testutil.NewMockWMS()
	defer mock.Close()

	fixtures := make([]map[string]any, 5)
	for i := range fixtures {
		fixtures[i] = map[string]any{"id": i + 1}
	}
	mock.SetEntity("order_hdr", fixtures)
	mock.SetDetail("order_hdr", 3, map[string]any{"id": 3, "status": "Shipped"})

	cfg := testConfig(mock.URL())
	cfg.PageSize = 2
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	records, err := c.FetchAll(context.Background(), "order_hdr", nil)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(records) != 5 {
		t.Errorf("records = %d, want 5", len(records))
	}
	// 5 records at page size 2: three pages, the last one short.
	if n := mock.GetRequestCount(); n != 3 {
		t.Errorf("requests = %d, want 3", n)
	}

	detail, err := c.FetchDetail(context.Background(), "order_hdr", 3)
	if err != nil {
		t.Fatalf("FetchDetail() error = %v", err)
	}
	if detail["status"] != "Shipped" {
		t.Errorf("detail status = %v, want Shipped", detail["status"])
	}
}

func TestFetchDetail_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.FetchDetail(context.Background(), "inventory", 99)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
}
