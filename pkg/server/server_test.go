package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zen-systems/bioroute/pkg/adapter"
	"github.com/zen-systems/bioroute/pkg/catalog"
	"github.com/zen-systems/bioroute/pkg/invoker"
	"github.com/zen-systems/bioroute/pkg/pipeline"
	"github.com/zen-systems/bioroute/pkg/reasoner"
	"github.com/zen-systems/bioroute/pkg/router"
)

type fakeCatalog struct {
	tools   []catalog.Descriptor
	listErr error
	results map[string]any
}

func (f *fakeCatalog) ListTools(_ context.Context) ([]catalog.Descriptor, error) {
	return f.tools, f.listErr
}

func (f *fakeCatalog) CallTool(_ context.Context, name string, _ map[string]any) (any, error) {
	if r, ok := f.results[name]; ok {
		return r, nil
	}
	return nil, catalog.ErrToolNotFound
}

func newTestServer(cat catalog.Client, routerJSON, reasonerJSON string) *Server {
	routerAdapter := adapter.NewMockAdapterWithResponses(nil, routerJSON)
	reasonerAdapter := adapter.NewMockAdapterWithResponses(nil, reasonerJSON)

	co := pipeline.New(
		cat,
		router.New(routerAdapter, "mock-1", nil),
		invoker.New(cat, nil),
		reasoner.New(reasonerAdapter, "mock-1", nil),
		nil,
	)
	return New(co, cat, nil)
}

func TestHandlePromptSuccess(t *testing.T) {
	cat := &fakeCatalog{}
	srv := newTestServer(cat,
		`{"action": "explain", "needs_tools": false, "required_tools": [], "entities": [], "confidence": 0.9}`,
		`{"result": "Aspirin inhibits COX enzymes.", "rationale": "General pharmacology knowledge."}`,
	)

	req := httptest.NewRequest(http.MethodPost, "/prompt", strings.NewReader(`{"prompt": "How does aspirin work?"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "success" {
		t.Errorf("status = %v", body["status"])
	}
	if body["prompt"] != "How does aspirin work?" {
		t.Errorf("prompt not echoed: %v", body["prompt"])
	}
	for _, key := range []string{"decision", "tool_results", "response"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing key %q: %v", key, body)
		}
	}
	if _, ok := body["tool_results"].([]any); !ok {
		t.Errorf("tool_results should be a list: %v", body["tool_results"])
	}
}

func TestHandlePromptMissingPrompt(t *testing.T) {
	srv := newTestServer(&fakeCatalog{}, "{}", "{}")

	for _, body := range []string{`{}`, `{"prompt": ""}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/prompt", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, rec.Code)
		}
		var resp map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if resp["error"] != "Missing prompt in request body" {
			t.Errorf("%s: error = %q", body, resp["error"])
		}
	}
}

func TestHandlePromptCatalogFailure(t *testing.T) {
	cat := &fakeCatalog{listErr: errors.New("connection refused")}
	srv := newTestServer(cat, "{}", "{}")

	req := httptest.NewRequest(http.MethodPost, "/prompt", strings.NewReader(`{"prompt": "anything"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["error"] != "Internal server error" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&fakeCatalog{}, "{}", "{}")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %q", resp["status"])
	}
}

func TestHandleTools(t *testing.T) {
	cat := &fakeCatalog{tools: []catalog.Descriptor{
		{Name: "molecular_properties", Description: "Calculate molecular properties."},
		{Name: "binding_affinity", Description: "Predict binding affinity."},
	}}
	srv := newTestServer(cat, "{}", "{}")

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "success" {
		t.Errorf("status = %v", body["status"])
	}
	if body["count"] != float64(2) {
		t.Errorf("count = %v", body["count"])
	}
	if len(body["tools"].([]any)) != 2 {
		t.Errorf("tools = %v", body["tools"])
	}
}

func TestHandleToolsCatalogFailure(t *testing.T) {
	cat := &fakeCatalog{listErr: errors.New("connection refused")}
	srv := newTestServer(cat, "{}", "{}")

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["error"] != "Failed to retrieve tools" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestHandlePromptRejectsGet(t *testing.T) {
	srv := newTestServer(&fakeCatalog{}, "{}", "{}")

	req := httptest.NewRequest(http.MethodGet, "/prompt", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
