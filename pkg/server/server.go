// Package server provides the HTTP front end: prompt submission, health
// checks, and tool catalog listing.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/zen-systems/bioroute/pkg/catalog"
	"github.com/zen-systems/bioroute/pkg/pipeline"
)

// Server translates HTTP requests into pipeline runs.
type Server struct {
	coordinator *pipeline.Coordinator
	catalog     catalog.Client
	log         *slog.Logger
}

// New creates a server over the given coordinator and catalog client.
func New(co *pipeline.Coordinator, cat catalog.Client, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{coordinator: co, catalog: cat, log: log}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /prompt", s.handlePrompt)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /tools", s.handleTools)
	return mux
}

// ListenAndServe runs the server on addr until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// promptRequest is the inbound request shape.
type promptRequest struct {
	Prompt string `json:"prompt"`
}

// promptResponse is the success envelope around the assembled pipeline
// response.
type promptResponse struct {
	Status string `json:"status"`
	*pipeline.Response
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing prompt in request body"})
		return
	}

	s.log.Info("received prompt", "prompt", req.Prompt)

	resp, err := s.coordinator.Answer(r.Context(), req.Prompt)
	if err != nil {
		s.log.Error("error processing prompt", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	s.writeJSON(w, http.StatusOK, promptResponse{Status: "success", Response: resp})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"status": "success", "tools": []catalog.Descriptor{}, "count": 0})
		return
	}

	tools, err := s.catalog.ListTools(r.Context())
	if err != nil {
		s.log.Error("error listing tools", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve tools"})
		return
	}
	if tools == nil {
		tools = []catalog.Descriptor{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"status": "success", "tools": tools, "count": len(tools)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}
