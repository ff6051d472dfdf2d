// Package web serves the spectator and observability HTTP surface: health,
// Prometheus metrics, the latest snapshot as JSON or PNG, and a websocket
// feed of snapshots.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/tui-breaker/internal/games/breakout"
	"github.com/vovakirdan/tui-breaker/internal/metrics"
	"github.com/vovakirdan/tui-breaker/internal/render"
)

// Config configures the HTTP surface.
type Config struct {
	Addr              string
	CORSOrigins       []string        // nil allows localhost origins only
	RateLimit         RateLimitConfig // zero value uses DefaultRateLimitConfig
	BroadcastInterval time.Duration   // spectator feed period, default 100ms
	Logger            *log.Logger
}

// Server bundles the router, the spectator hub and the listener.
type Server struct {
	cfg     Config
	feed    *Feed
	hub     *Hub
	metrics *metrics.Recorder
	logger  *log.Logger
}

// NewServer creates a server over a feed. rec may be nil, in which case
// /metrics is not mounted.
func NewServer(cfg Config, feed *Feed, rec *metrics.Recorder) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit = DefaultRateLimitConfig
	}
	if cfg.BroadcastInterval <= 0 {
		cfg.BroadcastInterval = 100 * time.Millisecond
	}
	if cfg.CORSOrigins == nil {
		cfg.CORSOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	return &Server{
		cfg:     cfg,
		feed:    feed,
		hub:     NewHub(cfg.Logger),
		metrics: rec,
		logger:  cfg.Logger,
	}
}

// Hub returns the spectator hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Router builds the HTTP handler. It starts no goroutines.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(newIPRateLimiter(s.cfg.RateLimit).Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Get("/sessions", s.handleSessions)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/frame.png", s.handleFrame)
	r.Get("/ws", s.hub.ServeWS)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.hub.Run(ctx)
	go s.BroadcastLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: listen %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

// spectatorMessage is one frame of the websocket feed.
type spectatorMessage struct {
	Session  string            `json:"session"`
	Snapshot breakout.Snapshot `json:"snapshot"`
}

// BroadcastLoop pushes every session's latest snapshot to the hub at the
// configured interval while spectators are connected.
func (s *Server) BroadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.BroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.hub.ClientCount() == 0 {
				continue
			}
			for _, id := range s.feed.Sessions() {
				snap, ok := s.feed.Snapshot(id)
				if !ok {
					continue
				}
				msg, err := json.Marshal(spectatorMessage{Session: id, Snapshot: snap})
				if err != nil {
					s.logger.Error("encode spectator frame", "session", id, "err", err)
					continue
				}
				s.hub.Broadcast(msg)
			}
		}
	}
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sessions": s.feed.Sessions()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.EncodePNG(w, snap, render.Options{}); err != nil {
		s.logger.Error("render frame", "err", err)
	}
}

// lookup resolves the ?session= query, writing the error response itself.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (breakout.Snapshot, bool) {
	id := r.URL.Query().Get("session")
	snap, ok := s.feed.Snapshot(id)
	if ok {
		return snap, true
	}
	if id == "" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no session running"})
	} else {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session " + id})
	}
	return breakout.Snapshot{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs each request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
