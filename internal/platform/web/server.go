// Package web serves the game's images and a read-only score API over
// HTTP. A running server can be used as the asset source of other
// instances.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/gravity-runner/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Options configures the router.
type Options struct {
	GameID       string
	HighScoreKey string
	Timeout      time.Duration // Per-request timeout; zero uses 15s
}

// handler serves the score API.
type handler struct {
	store  *storage.Store
	opts   Options
	logger *log.Logger
}

// NewRouter returns the HTTP handler. files must contain the images/
// directory; store may be nil, in which case the API is not mounted.
func NewRouter(files fs.FS, store *storage.Store, opts Options, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/images/*", http.FileServer(http.FS(files)))

	if store != nil {
		h := &handler{store: store, opts: opts, logger: logger}
		r.Route("/api", func(r chi.Router) {
			r.Get("/highscore", h.highScore)
			r.Get("/scores", h.scores)
		})
	}
	return r
}

// requestLogger logs one line per request.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

type highScoreResponse struct {
	Game      string `json:"game"`
	HighScore int    `json:"high_score"`
	Runs      int    `json:"runs"`
}

func (h *handler) highScore(w http.ResponseWriter, _ *http.Request) {
	best, err := h.store.GetInt(h.opts.HighScoreKey)
	if err != nil {
		h.fail(w, err)
		return
	}
	stats, err := h.store.GetGameStats(h.opts.GameID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, highScoreResponse{
		Game:      h.opts.GameID,
		HighScore: max(best, stats.HighScore),
		Runs:      stats.GamesCount,
	})
}

type scoreResponse struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *handler) scores(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLimit)
	}

	entries, err := h.store.TopScores(h.opts.GameID, limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	out := make([]scoreResponse, len(entries))
	for i, e := range entries {
		out[i] = scoreResponse{Rank: i + 1, Score: e.Score, RunID: e.RunID, CreatedAt: e.CreatedAt}
	}
	writeJSON(w, out)
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("score query failed", "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// Server is an HTTP server with graceful shutdown.
type Server struct {
	srv    *http.Server
	logger *log.Logger
}

// NewServer creates a server for handler on addr.
func NewServer(addr string, handler http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving assets", "addr", "http://"+ln.Addr().String())
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down asset server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
