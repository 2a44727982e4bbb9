// Package gateway exposes batch generation over HTTP: runs are started
// with a POST, progress streams out over SSE or a websocket.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"apismith/internal/artifact"
	"apismith/internal/batch"
	"apismith/internal/ledger"
	"apismith/internal/resolver"
)

// AddrFromEnv returns the listen address, GATEWAY_ADDR or :8787.
func AddrFromEnv() string {
	if addr := strings.TrimSpace(os.Getenv("GATEWAY_ADDR")); addr != "" {
		return addr
	}
	return ":8787"
}

// Server runs batches in the background and reports their progress.
type Server struct {
	res         *resolver.Resolver
	sink        artifact.Sink
	ledger      ledger.Store
	logger      *zap.Logger
	artifactDir string

	reg     *registry
	started time.Time
	runSeq  atomic.Int64
}

func New(res *resolver.Resolver, sink artifact.Sink, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		res:     res,
		sink:    sink,
		logger:  logger,
		reg:     newRegistry(),
		started: time.Now(),
	}
}

// WithLedger records per-application outcomes for every gateway run.
func (s *Server) WithLedger(store ledger.Store) *Server {
	s.ledger = store
	return s
}

// WithArtifactDir serves generated files under /v1/artifacts/ from root.
// Only meaningful when artifacts land on local disk.
func (s *Server) WithArtifactDir(root string) *Server {
	s.artifactDir = strings.TrimSpace(root)
	return s
}

// Handler returns the routed handler wrapped in permissive CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/runs", s.handleCreateRun)
	mux.HandleFunc("GET /v1/runs/{id}", s.handleRunStatus)
	mux.HandleFunc("GET /v1/runs/{id}/events", s.handleRunEvents)
	mux.HandleFunc("GET /v1/ws", s.handleWS)
	mux.HandleFunc("GET /v1/artifacts/{path...}", s.handleArtifacts)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return corsHandler(mux)
}

// ListenAndServe serves with h2c so plaintext HTTP/2 clients work, and
// shuts down when ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(s.Handler(), &http2.Server{}),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("gateway listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) newRunID() string {
	return fmt.Sprintf("run-%d-%d", s.runSeq.Add(1), time.Now().UnixNano())
}

// execute drives one batch and publishes its progress. It runs in its
// own goroutine with a background context: a run outlives the request
// that started it.
func (s *Server) execute(st *runState) {
	runner := batch.New(s.res, s.sink, s.logger).
		WithRunID(st.ID).
		WithProgress(func(res batch.AppResult) {
			st.publish(Event{Event: eventApp, RunID: st.ID, Result: &res})
		})
	if s.ledger != nil {
		runner = runner.WithLedger(s.ledger)
	}

	report := runner.Run(context.Background(), st.Apps)
	st.publish(Event{Event: eventRunDone, RunID: st.ID, Report: report})
	s.logger.Info("run finished",
		zap.String("run_id", st.ID),
		zap.Int("apps", len(st.Apps)),
		zap.Int("failed", report.Failed()))
}

func corsHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
