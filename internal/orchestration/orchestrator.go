package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/picalc/internal/cancellation"
	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/progress"
)

const (
	// ProgressBufferSize is the capacity of the channel feeding the progress
	// display. Snapshots beyond it are dropped rather than blocking the engine.
	ProgressBufferSize = 16
	// DefaultPollInterval bounds each wait for the engine goroutine.
	DefaultPollInterval = 100 * time.Millisecond
	// NoTimeLimit disables the time limit.
	NoTimeLimit time.Duration = -1
)

// RunOptions controls how Execute drives an engine.
type RunOptions struct {
	// TimeLimit cancels the run once elapsed. Negative means no limit; zero
	// cancels before the first term.
	TimeLimit time.Duration
	// PollInterval is the bounded wait between completion checks.
	// Zero selects DefaultPollInterval.
	PollInterval time.Duration
	// Token lets the caller cancel the run, for example from a TUI key
	// binding. Nil creates a private token.
	Token *cancellation.Token
	// Logger receives lifecycle messages. Nil disables them.
	Logger logging.Logger
}

// Execute runs engine in the background until it finishes or is cancelled
// and returns its final result.
//
// Parameters are validated before anything starts. Cancellation of ctx and
// the time limit both set the token; the engine observes it between terms.
// Snapshots are delivered synchronously to reporter and, without blocking,
// to display through a buffered channel.
func Execute(ctx context.Context, engine chudnovsky.Engine, params chudnovsky.Params, opts RunOptions, reporter progress.Reporter, display ProgressDisplay, out io.Writer) (chudnovsky.Result, error) {
	if err := params.Validate(); err != nil {
		return chudnovsky.Result{Engine: engine.Name()}, err
	}
	if display == nil {
		display = NullProgressDisplay{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	token := opts.Token
	if token == nil {
		token = cancellation.New()
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	stopWatch := token.Watch(ctx)
	defer stopWatch()
	if opts.TimeLimit >= 0 {
		stopTimer := token.CancelAfter(opts.TimeLimit)
		defer stopTimer()
	}

	snapshots := make(chan progress.Snapshot, ProgressBufferSize)
	subject := progress.NewSubject()
	if reporter != nil {
		subject.Register(reporter)
	}
	subject.Register(progress.NewChannelObserver(snapshots))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go display.DisplayProgress(&displayWg, snapshots, out)

	logger.Info("run started",
		logging.String("engine", engine.Name()),
		logging.Uint64("base_precision", params.BasePrecision),
		logging.Duration("time_limit", opts.TimeLimit))

	start := time.Now()
	var result chudnovsky.Result
	var g errgroup.Group
	g.Go(func() error {
		var err error
		result, err = engine.Run(ctx, params, subject.Freeze(), token)
		return err
	})

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	var runErr error
wait:
	for {
		select {
		case runErr = <-done:
			break wait
		case <-ticker.C:
			if token.Cancelled() {
				logger.Debug("waiting for engine to observe cancellation")
			}
		}
	}

	close(snapshots)
	displayWg.Wait()

	if result.Elapsed == 0 {
		result.Elapsed = time.Since(start)
	}
	if result.Engine == "" {
		result.Engine = engine.Name()
	}
	if runErr != nil {
		logger.Error("run failed", runErr, logging.String("engine", engine.Name()))
		return result, runErr
	}
	logger.Info("run finished",
		logging.Uint64("iterations", result.Iterations),
		logging.Uint64("precision", result.Precision),
		logging.Bool("cancelled", token.Cancelled()),
		logging.Duration("elapsed", result.Elapsed))
	return result, nil
}
