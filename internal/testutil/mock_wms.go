// Package testutil provides testing utilities for the WMS extract pipeline.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock WMS endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockWMS is a configurable mock WMS server for testing. Without a custom
// handler it serves registered entity fixtures with real pagination
// semantics, wrapped in the {"results": [...]} envelope.
type MockWMS struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)
	entities map[string][]map[string]any
	details  map[string]map[string]any

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
}

// NewMockWMS creates a new mock WMS server.
func NewMockWMS() *MockWMS {
	mock := &MockWMS{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
		entities: make(map[string][]map[string]any),
		details:  make(map[string]map[string]any),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockWMS) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockWMS) Close() {
	m.server.Close()
}

// SetHandler sets a custom handler for a specific path.
func (m *MockWMS) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockWMS) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetEntity registers summary fixtures for /entity/{name}, served paginated.
func (m *MockWMS) SetEntity(name string, records []map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities[name] = records
}

// SetDetail registers the detail payload for /entity/{name}/{id}, served
// wrapped in the {"result": {...}} envelope.
func (m *MockWMS) SetDetail(name string, id any, record map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.details[fmt.Sprintf("/entity/%s/%v", name, id)] = record
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockWMS) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// defaultHandler serves registered fixtures with WMS envelope shapes, or 404.
func (m *MockWMS) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	m.mu.RLock()
	detail, isDetail := m.details[r.URL.Path]
	m.mu.RUnlock()

	if isDetail {
		writeJSON(w, http.StatusOK, map[string]any{"result": detail})
		return
	}

	var entity string
	if n, err := fmt.Sscanf(r.URL.Path, "/entity/%s", &entity); err != nil || n != 1 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	m.mu.RLock()
	records, exists := m.entities[entity]
	m.mu.RUnlock()

	if !exists {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "entity not found"}`))
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 200
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": records[start:end]})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
