package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/picalc/internal/cancellation"
	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/cli"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
	"github.com/agbru/picalc/internal/tui"
)

// runCalculate runs the computation with the spinner display.
func (a *Application) runCalculate(ctx context.Context, engine chudnovsky.Engine, reporter progress.Reporter, logger logging.Logger, out io.Writer) int {
	cfg := a.Config

	if !cfg.Quiet {
		cli.DisplayBanner(out)
		cli.PrintExecutionConfig(cfg, out)
	}

	cliDisplay := cli.CLIProgressDisplay{TimeLimit: cfg.TimeLimit}
	if cfg.LiveDigits {
		cliDisplay.Live = &cli.LiveDigits{MaxDisplay: cfg.MaxDisplay, Every: cli.DigitsRefreshRate}
	}
	var display orchestration.ProgressDisplay = cliDisplay
	progressOut := out
	if cfg.Quiet {
		display = orchestration.NullProgressDisplay{}
		progressOut = io.Discard
	}

	sampler, stopSampler := a.startSampler(ctx)
	token := cancellation.New()
	opts := orchestration.RunOptions{
		TimeLimit: cfg.TimeLimit,
		Token:     token,
		Logger:    logger,
	}
	result, err := orchestration.Execute(ctx, engine, cfg.ToParams(), opts, reporter, display, progressOut)
	stopSampler()
	if err != nil {
		return apperrors.HandleRunError(err, result.Elapsed, out, cli.CLIColorProvider{})
	}

	// Only the signal watcher and the time limit set the token here.
	limitReached := token.Cancelled() && ctx.Err() == nil
	return a.finish(ctx, result, limitReached, sampler, out)
}

// runTUI runs the computation under the dashboard and prints the result
// once the dashboard has closed.
func (a *Application) runTUI(ctx context.Context, engine chudnovsky.Engine, reporter progress.Reporter, out io.Writer) int {
	cfg := a.Config

	sampler, stopSampler := a.startSampler(ctx)
	result, err := tui.Run(ctx, engine, cfg.ToParams(), tui.Options{
		TimeLimit:  cfg.TimeLimit,
		MaxDisplay: cfg.MaxDisplay,
		Version:    Version,
		Reporter:   reporter,
		Logger:     logging.NewNopLogger(),
	})
	stopSampler()
	if err != nil {
		return apperrors.HandleRunError(err, result.Elapsed, out, cli.CLIColorProvider{})
	}

	limitReached := cfg.HasTimeLimit() && result.Elapsed >= cfg.TimeLimit
	return a.finish(ctx, result, limitReached, sampler, out)
}

// finish reports why the run stopped and presents the final result.
func (a *Application) finish(ctx context.Context, result chudnovsky.Result, limitReached bool, sampler *metrics.Sampler, out io.Writer) int {
	cfg := a.Config

	if !cfg.Quiet {
		switch {
		case ctx.Err() != nil:
			cli.DisplayInterrupted(out)
		case limitReached:
			cli.DisplayTimeLimitReached(out)
		}
	}

	if !result.HasSnapshot() {
		cli.DisplayNoResult(out)
		return apperrors.ExitNoResult
	}

	outputCfg := cli.OutputConfig{
		OutputFile: cfg.OutputFile,
		Save:       cfg.Save,
		Quiet:      cfg.Quiet,
		Verbose:    cfg.Verbose,
		MaxDisplay: cfg.MaxDisplay,
	}
	if _, err := cli.DisplayResultWithConfig(result, outputCfg, time.Now(), out); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	if cfg.Details && sampler != nil && !cfg.Quiet {
		cli.DisplayMemoryReport(sampler.Report(), out)
	}
	return apperrors.ExitSuccess
}

// startSampler samples memory while the run is in progress when --details
// is set. The returned function stops sampling.
func (a *Application) startSampler(ctx context.Context) (*metrics.Sampler, func()) {
	if !a.Config.Details {
		return nil, func() {}
	}
	sampler := metrics.NewSampler(metrics.DefaultSampleInterval)
	sampleCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		sampler.Run(sampleCtx)
	}()
	return sampler, func() {
		cancel()
		<-done
	}
}
