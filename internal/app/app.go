// Package app provides the application structure of the picalc command: it
// parses the configuration, selects the engine and dispatches to the plain
// terminal or the dashboard front end.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/cli"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
	"github.com/agbru/picalc/internal/server"
	"github.com/agbru/picalc/internal/ui"
)

// snapshotLogThreshold is the precision growth in digits between two
// snapshot log lines.
const snapshotLogThreshold = 1000

// Application represents the picalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   chudnovsky.Factory
	ErrWriter io.Writer
	// In feeds the interactive time-limit prompt.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom engine factory.
func WithFactory(f chudnovsky.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used by the interactive prompt.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates an Application by parsing command-line arguments. args[0] is
// the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = chudnovsky.NewDefaultFactory()
	}

	programName := "picalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	app.Config = config.ApplyAdaptiveDefaults(cfg)
	return app, nil
}

// Run executes the application and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)
	colors := cli.CLIColorProvider{}

	logger, err := a.newLogger()
	if err != nil {
		return apperrors.HandleRunError(apperrors.NewConfigError("%v", err), 0, out, colors)
	}

	if a.Config.Interactive {
		limit, err := cli.PromptTimeLimit(a.In, out)
		if err != nil {
			return apperrors.HandleRunError(err, 0, out, colors)
		}
		a.Config.TimeLimit = limit
	}

	engine, err := orchestration.GetEngine(a.Config, a.Factory)
	if err != nil {
		return apperrors.HandleRunError(err, 0, out, colors)
	}

	ctx, stopSignals := SetupSignals(ctx)
	defer stopSignals()

	reporter, stopServer := a.startObservers(ctx, engine.Name(), logger)
	defer stopServer()

	if a.Config.TUI {
		return a.runTUI(ctx, engine, reporter, out)
	}
	return a.runCalculate(ctx, engine, reporter, logger, out)
}

// newLogger builds the application logger. The dashboard owns the terminal,
// so TUI runs log nothing.
func (a *Application) newLogger() (*logging.ZerologAdapter, error) {
	if a.Config.TUI {
		return logging.NewNopLogger(), nil
	}
	return logging.Configure(a.ErrWriter, a.Config.LogLevel)
}

// startObservers assembles the snapshot observers shared by both front ends
// and starts the metrics server when an address is configured. The returned
// function stops the server and waits for it.
func (a *Application) startObservers(ctx context.Context, engineName string, logger *logging.ZerologAdapter) (progress.Reporter, func()) {
	subject := progress.NewSubject()
	subject.Register(progress.NewLoggingObserver(logger.Zerolog(), snapshotLogThreshold))

	if a.Config.MetricsAddr == "" {
		return subject, func() {}
	}

	srv := server.NewServer(a.Config.MetricsAddr, server.WithLogger(logger))
	subject.Register(srv.Status())
	subject.Register(progress.NewMetricsObserver(engineName))

	serverCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Start(serverCtx); err != nil {
			logger.Error("metrics server stopped", err, logging.String("addr", a.Config.MetricsAddr))
		}
	}()
	return subject, func() {
		cancel()
		<-done
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
