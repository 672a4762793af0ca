// Package server provides the optional local HTTP surface: health, live
// status, the session dispatch journal, a websocket dispatch feed, an MJPEG
// preview and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/metrics"
	"github.com/ayusman/mudra/internal/store"
)

// Controller is the part of the loop the server reads and toggles.
type Controller interface {
	Status() app.Status
	SetEnabled(enabled bool)
}

// Config holds the server configuration. Nil collaborators disable their
// routes.
type Config struct {
	Controller Controller
	Store      *store.Store
	Table      *action.Table
	Metrics    *metrics.Metrics
	Hub        *Hub
	Stream     *Stream
	Log        *slog.Logger
}

// Server represents the HTTP server.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	if config.Log == nil {
		config.Log = slog.Default()
	}
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Controller != nil {
		s.mux.HandleFunc("/api/status", s.handleStatus)
		s.mux.HandleFunc("/api/enabled", s.handleEnabled)
	}
	if s.config.Store != nil {
		s.mux.HandleFunc("/api/dispatches", s.handleDispatches)
		s.mux.HandleFunc("/api/dispatches/", s.handleDispatch)
	}
	if s.config.Table != nil {
		s.mux.HandleFunc("/api/gestures", s.handleGestures)
	}
	if s.config.Hub != nil {
		s.mux.Handle("/api/events", s.config.Hub)
	}
	if s.config.Stream != nil {
		s.mux.Handle("/api/stream", s.config.Stream)
	}
	if s.config.Metrics != nil {
		s.mux.Handle("/metrics", s.config.Metrics.Handler())
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.config.Log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.config.Hub != nil {
		s.config.Hub.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.config.Controller.Status())
}

type enabledRequest struct {
	Enabled *bool `json:"enabled"`
}

func (s *Server) handleEnabled(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req enabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		http.Error(w, `body must be {"enabled": true|false}`, http.StatusBadRequest)
		return
	}

	s.config.Controller.SetEnabled(*req.Enabled)
	s.config.Log.Info("detection toggled over http", "enabled", *req.Enabled)
	writeJSON(w, http.StatusOK, s.config.Controller.Status())
}

func (s *Server) handleDispatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	list, err := s.config.Store.Dispatches().List(r.Context(), limit)
	if err != nil {
		s.config.Log.Error("list dispatches", "error", err)
		http.Error(w, "Failed to list dispatches", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*store.DispatchRecord{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/dispatches/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	rec, err := s.config.Store.Dispatches().GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.config.Log.Error("get dispatch", "id", id, "error", err)
		http.Error(w, "Failed to get dispatch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type gestureBinding struct {
	Gesture     string `json:"gesture"`
	Action      string `json:"action,omitempty"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleGestures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := s.config.Table.Entries()
	out := make([]gestureBinding, 0, len(entries))
	for _, e := range entries {
		out = append(out, gestureBinding{
			Gesture:     e.Label.String(),
			Action:      e.Binding.Name,
			Description: e.Binding.Description,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
