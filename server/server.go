// Package server exposes the search engine over HTTP JSON and WebSocket.
//
// Endpoints:
//
//	POST /api/search   one search per request
//	GET  /api/random   generate a board layout
//	GET  /api/ws       WebSocket; one search per text message
//	GET  /healthz      liveness
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/config"
	"github.com/katalvlaran/gridpath/internal/ctxlog"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server is the HTTP front end of the engine.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// New creates a server using cfg for defaults and logger for request logs.
// A nil logger discards output.
func New(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = ctxlog.Discard()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/random", s.handleRandom)
	s.mux.HandleFunc("GET /api/ws", s.handleWS)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	return s
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		logger := s.logger.With(slog.String("method", r.Method), slog.String("path", r.URL.Path))
		s.mux.ServeHTTP(w, r.WithContext(ctxlog.WithLogger(r.Context(), logger)))
		logger.Debug("request served", slog.Duration("elapsed", time.Since(began)))
	})
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")

	return nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(r.Context())

	var req SearchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, SearchResponse{Path: []astar.Step{}, Error: "invalid request: " + err.Error()})
		return
	}

	resp, err := search(astar.NewEngine(), req, s.cfg.AllowDiagonalThroughWalls)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, SearchResponse{Path: []astar.Step{}, Error: err.Error()})
		return
	}
	logger.Info("search",
		slog.Bool("ok", resp.OK),
		slog.Int("path_len", len(resp.Path)),
		slog.Int("expanded", resp.Expanded),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	width, err1 := intParam(q.Get("width"), s.cfg.Width)
	height, err2 := intParam(q.Get("height"), s.cfg.Height)
	walls, err3 := intParam(q.Get("walls"), s.cfg.Walls)
	seed, err4 := strconv.ParseInt(defaultString(q.Get("seed"), "0"), 10, 64)
	if err := errors.Join(err1, err2, err3, err4); err != nil {
		http.Error(w, "invalid query: "+err.Error(), http.StatusBadRequest)
		return
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := s.cfg
	cfg.Layout = ""
	cfg.Width, cfg.Height, cfg.Walls, cfg.Seed = width, height, walls, seed
	if err := cfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	g, err := cfg.Board(cfg.Rand())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, RandomResponse{Layout: g.String(), Width: g.Width(), Height: g.Height(), Seed: seed})
}

// handleWS serves one engine per connection. Every text message is a
// SearchRequest; every reply a SearchResponse, including for malformed
// messages.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(r.Context())

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()
	logger.Info("websocket connected", slog.String("remote", r.RemoteAddr))

	eng := astar.NewEngine()
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("websocket read ended", slog.Any("error", err))
			}
			return
		}

		resp := s.reply(eng, message)

		if err := conn.WriteJSON(resp); err != nil {
			logger.Debug("websocket write failed", slog.Any("error", err))
			return
		}
	}
}

// reply decodes one WebSocket message and runs it on eng.
func (s *Server) reply(eng *astar.Engine, message []byte) SearchResponse {
	var req SearchRequest
	if err := json.Unmarshal(message, &req); err != nil {
		return SearchResponse{Path: []astar.Step{}, Error: "invalid request: " + err.Error()}
	}
	resp, err := search(eng, req, s.cfg.AllowDiagonalThroughWalls)
	if err != nil {
		return SearchResponse{Path: []astar.Step{}, Error: err.Error()}
	}

	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}

	return v, nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
