package chudnovsky

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

import (
	"context"
	"math/big"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/picalc/internal/cancellation"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/precision"
	"github.com/agbru/picalc/internal/progress"
)

// Parameter defaults and limits.
const (
	MinBasePrecision = 10
	DefaultChunkSize = 10
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picalc_runs_total",
			Help: "The total number of pi engine runs",
		},
		[]string{"engine", "status"},
	)
	runDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "picalc_run_duration_seconds",
			Help:    "The duration of pi engine runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		},
		[]string{"engine"},
	)
	termsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picalc_terms_total",
			Help: "Series terms summed across all runs",
		},
		[]string{"engine"},
	)
)

// Params configures a run.
type Params struct {
	// BasePrecision is the starting precision in decimal digits.
	BasePrecision uint64
	// StepInterval is the number of terms between precision raises.
	StepInterval uint64
	// StepAmount is the number of digits added at each raise.
	StepAmount uint64
	// Workers is the number of concurrent chunk workers (chunked engine only).
	Workers int
	// ChunkSize is the number of terms per worker per batch (chunked engine only).
	ChunkSize int
	// MaxIterations stops the run after that many terms. Zero means unbounded.
	MaxIterations uint64
}

// DefaultParams returns the standard parameters.
func DefaultParams() Params {
	return Params{
		BasePrecision: precision.DefaultBaseDigits,
		StepInterval:  precision.DefaultStepInterval,
		StepAmount:    precision.DefaultStepAmount,
		Workers:       runtime.NumCPU(),
		ChunkSize:     DefaultChunkSize,
	}
}

// Validate checks the parameters and returns an apperrors.ValidationError
// naming the first offending field.
func (p Params) Validate() error {
	switch {
	case p.BasePrecision < MinBasePrecision:
		return apperrors.ValidationError{Field: "base_precision", Message: "must be at least 10 digits"}
	case p.StepInterval == 0:
		return apperrors.ValidationError{Field: "step_interval", Message: "must be greater than zero"}
	case p.StepAmount == 0:
		return apperrors.ValidationError{Field: "step_amount", Message: "must be greater than zero"}
	case p.Workers <= 0:
		return apperrors.ValidationError{Field: "workers", Message: "must be greater than zero"}
	case p.ChunkSize <= 0:
		return apperrors.ValidationError{Field: "chunk_size", Message: "must be greater than zero"}
	}
	return nil
}

// Scheduler returns the precision schedule described by p.
func (p Params) Scheduler() precision.Scheduler {
	return precision.Scheduler{Interval: p.StepInterval, Step: p.StepAmount}
}

// Result is the final state of a run.
type Result struct {
	// Pi is the last approximation computed.
	Pi *big.Float
	// Precision is the working precision in digits when the run stopped.
	Precision uint64
	// Iterations is the number of terms summed after term zero.
	Iterations uint64
	// Snapshots is the number of reporter invocations.
	Snapshots uint64
	// Elapsed is the wall time of the run.
	Elapsed time.Duration
	// Engine is the name of the engine that produced the result.
	Engine string
}

// HasSnapshot reports whether the run reached at least one precision raise.
func (r Result) HasSnapshot() bool { return r.Snapshots > 0 }

// Engine is a π engine.
type Engine interface {
	// Run sums the series until token is set or params.MaxIterations terms
	// have been summed. reporter is invoked synchronously on the calling
	// goroutine after every precision raise.
	Run(ctx context.Context, params Params, reporter progress.Reporter, token *cancellation.Token) (Result, error)

	// Name returns the engine identifier ("sequential", "chunked").
	Name() string
}

// coreEngine is a bare summation algorithm without instrumentation.
type coreEngine interface {
	RunCore(params Params, reporter progress.Reporter, token *cancellation.Token) (Result, error)
	Name() string
}

// PiEngine wraps a coreEngine with validation, tracing, metrics and
// snapshot counting.
type PiEngine struct {
	core coreEngine
}

// NewEngine wraps core. It panics if core is nil.
func NewEngine(core coreEngine) Engine {
	if core == nil {
		panic("chudnovsky: the core engine cannot be nil")
	}
	return &PiEngine{core: core}
}

// Name returns the core engine's name.
func (e *PiEngine) Name() string { return e.core.Name() }

// Run validates params and delegates to the core engine.
func (e *PiEngine) Run(ctx context.Context, params Params, reporter progress.Reporter, token *cancellation.Token) (result Result, err error) {
	if err := params.Validate(); err != nil {
		return Result{Engine: e.Name()}, err
	}
	if reporter == nil {
		reporter = progress.Discard
	}
	if token == nil {
		token = cancellation.New()
	}

	tracer := otel.Tracer("chudnovsky")
	_, span := tracer.Start(ctx, "Run")
	defer span.End()

	var snapshots atomic.Uint64
	counting := progress.ReporterFunc(func(s progress.Snapshot) {
		snapshots.Add(1)
		reporter.OnSnapshot(s)
	})

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		result.Elapsed = elapsed
		result.Engine = e.Name()
		result.Snapshots = snapshots.Load()

		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		runsTotal.WithLabelValues(e.Name(), status).Inc()
		runDuration.WithLabelValues(e.Name()).Observe(elapsed.Seconds())
		termsTotal.WithLabelValues(e.Name()).Add(float64(result.Iterations))
		span.SetAttributes(
			attribute.Int64("picalc.iterations", int64(result.Iterations)),
			attribute.Int64("picalc.precision", int64(result.Precision)),
		)

		log.Debug().
			Str("engine", e.Name()).
			Uint64("iterations", result.Iterations).
			Uint64("precision", result.Precision).
			Uint64("snapshots", result.Snapshots).
			Dur("elapsed", elapsed).
			Str("status", status).
			Msg("pi run completed")
	}()

	return e.core.RunCore(params, counting, token)
}

// arithmeticFailure builds the error returned when the series cannot advance.
func arithmeticFailure(engine string, iteration uint64, ctx precision.Context, cause error) error {
	return apperrors.ArithmeticError{
		Engine:    engine,
		Iteration: iteration,
		Precision: ctx.Digits(),
		Cause:     cause,
	}
}
