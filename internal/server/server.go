// Package server exposes the bridge over HTTP (the Zeus-facing JSON API)
// and over MCP for agent clients. Both surfaces share the same bridge and
// therefore the same session gate.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zeusmes/sapbridge/internal/bridge"
	"github.com/zeusmes/sapbridge/internal/telemetry"
)

// Server is the HTTP front of the bridge.
type Server struct {
	log     zerolog.Logger
	bridge  *bridge.Bridge
	metrics *telemetry.Metrics
	httpSrv *http.Server
}

func New(logger zerolog.Logger, b *bridge.Bridge, metrics *telemetry.Metrics) *Server {
	return &Server{log: logger, bridge: b, metrics: metrics}
}

// Handler builds the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /crear-orden", s.handleCreateOrder)
	mux.HandleFunc("POST /liberar-orden", s.handleReleaseOrder)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return s.withCORS(s.withRequestLog(mux))
}

// ListenAndServe blocks until Shutdown or a listener error. Timeouts are
// generous on purpose: a transaction script can legitimately take tens of
// seconds and must be allowed to reply late rather than be cut off.
func (s *Server) ListenAndServe(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      5 * time.Minute,
	}
	s.log.Info().Str("addr", addr).Msg("puente Zeus <-> SAP escuchando")
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests. A running script keeps its request
// alive, so draining also waits for the script to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// withRequestLog tags every request with an id and logs method, path,
// status, and duration.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		reqID := uuid.NewString()

		next.ServeHTTP(rw, r)

		s.log.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// withCORS answers preflight and tags every response for the Zeus browser
// front-end, which calls this service cross-origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
