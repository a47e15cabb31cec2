// Package server exposes Prometheus metrics and a health endpoint while a
// computation runs.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/agbru/picalc/internal/logging"
)

// Server serves /metrics and /health on a single address.
type Server struct {
	httpServer     *http.Server
	logger         logging.Logger
	metrics        *Metrics
	status         *RunStatus
	securityConfig SecurityConfig
	timeouts       Timeouts
	started        time.Time
}

// NewServer creates a server listening on addr (for example ":9090").
// It does not start listening until Start is called.
func NewServer(addr string, opts ...Option) *Server {
	s := &Server{
		logger:         logging.NewNopLogger(),
		metrics:        NewMetrics(),
		status:         NewRunStatus(),
		securityConfig: DefaultSecurityConfig(),
		timeouts:       DefaultServerTimeouts(),
		started:        time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))
	return mux
}

// Status returns the run status served by /health. Register it as a
// progress reporter to keep it current.
func (s *Server) Status() *RunStatus { return s.status }

// wrapWithMiddleware applies Security -> Logging -> Metrics -> Handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	return SecurityMiddleware(s.securityConfig, wrapped)
}

// loggingMiddleware logs each request at debug level.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Debug("http request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Duration("duration", time.Since(start)))
	}
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully. A listen failure is returned immediately.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("metrics server stopped")
	return nil
}
