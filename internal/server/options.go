package server

import (
	"time"

	"github.com/agbru/picalc/internal/logging"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Nil keeps the default.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeouts overrides the HTTP timeouts.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) {
		s.timeouts = timeouts
	}
}

// WithSecurityConfig overrides the header policy.
func WithSecurityConfig(cfg SecurityConfig) Option {
	return func(s *Server) {
		s.securityConfig = cfg
	}
}

// Timeouts holds timeout configuration for the HTTP server.
type Timeouts struct {
	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration
	// ReadTimeout is the maximum duration for reading a request.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration for writing a response.
	WriteTimeout time.Duration
	// IdleTimeout is the keep-alive idle limit.
	IdleTimeout time.Duration
}

// DefaultServerTimeouts returns timeouts suited to a scrape endpoint.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		ShutdownTimeout: 5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     time.Minute,
	}
}
