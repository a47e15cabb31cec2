// Package config provides the configuration management for the picalc
// application. It defines the configuration structure, parses command-line
// flags with environment overrides and validates the result.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/precision"
)

// EnvPrefix is the prefix for all environment variables read by picalc.
const EnvPrefix = "PICALC_"

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultPrecision is the starting precision in decimal digits.
	DefaultPrecision = precision.DefaultBaseDigits
	// DefaultStepInterval is the number of terms between precision raises.
	DefaultStepInterval = precision.DefaultStepInterval
	// DefaultStepAmount is the number of digits added at each raise.
	DefaultStepAmount = precision.DefaultStepAmount
	// DefaultChunkSize is the number of terms per worker per batch.
	DefaultChunkSize = chudnovsky.DefaultChunkSize
	// DefaultEngine is the engine used when none is given.
	DefaultEngine = "sequential"
	// DefaultMaxDisplay is the number of digits rendered on the terminal.
	DefaultMaxDisplay = 1000
	// DefaultLogLevel is the zerolog level used when none is given.
	DefaultLogLevel = "warn"
	// NoTimeLimit lets the computation run until interrupted.
	NoTimeLimit time.Duration = -1
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// BasePrecision is the starting precision in decimal digits.
	BasePrecision uint64
	// StepInterval is the number of terms between precision raises.
	StepInterval uint64
	// StepAmount is the number of digits added at each raise.
	StepAmount uint64
	// TimeLimit stops the computation after that duration. Negative means
	// no limit.
	TimeLimit time.Duration
	// Engine names the engine ("sequential" or "chunked").
	Engine string
	// Workers is the number of chunk workers. Zero selects the CPU count.
	Workers int
	// ChunkSize is the number of terms per worker per batch.
	ChunkSize int
	// MaxIterations stops the run after that many terms. Zero is unbounded.
	MaxIterations uint64
	// MaxDisplay limits the digits printed on the terminal.
	MaxDisplay int

	// OutputFile, if specified, saves the result to this file path.
	OutputFile string
	// Save writes the result to a timestamped file in the working directory
	// when OutputFile is empty. It is on by default.
	Save bool
	// LiveDigits redraws the digit block during the run.
	LiveDigits bool
	// Quiet mode prints only the digits.
	Quiet bool
	// Verbose prints every computed digit instead of the truncated preview.
	Verbose bool
	// Details adds memory statistics to the report.
	Details bool
	// NoColor disables colored output. NO_COLOR is honored as well.
	NoColor bool
	// TUI runs the interactive dashboard.
	TUI bool
	// Interactive prompts for the time limit before starting.
	Interactive bool
	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	// LogLevel is the zerolog level name.
	LogLevel string
	// ShowVersion prints version information and exits.
	ShowVersion bool
}

// ToParams converts the configuration into engine parameters.
func (c AppConfig) ToParams() chudnovsky.Params {
	return chudnovsky.Params{
		BasePrecision: c.BasePrecision,
		StepInterval:  c.StepInterval,
		StepAmount:    c.StepAmount,
		Workers:       c.Workers,
		ChunkSize:     c.ChunkSize,
		MaxIterations: c.MaxIterations,
	}
}

// HasTimeLimit reports whether the run is bounded in time.
func (c AppConfig) HasTimeLimit() bool {
	return c.TimeLimit >= 0
}

// Validate checks the semantic consistency of the configuration. Engine
// parameters are validated again by the engine itself; this pass reports
// them as configuration errors before anything starts.
func (c AppConfig) Validate(availableEngines []string) error {
	if c.BasePrecision < chudnovsky.MinBasePrecision {
		return apperrors.NewConfigError("precision must be at least %d digits: %d", chudnovsky.MinBasePrecision, c.BasePrecision)
	}
	if c.StepInterval == 0 {
		return apperrors.NewConfigError("step interval must be strictly positive")
	}
	if c.StepAmount == 0 {
		return apperrors.NewConfigError("step amount must be strictly positive")
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("worker count cannot be negative: %d", c.Workers)
	}
	if c.ChunkSize <= 0 {
		return apperrors.NewConfigError("chunk size must be strictly positive: %d", c.ChunkSize)
	}
	if c.MaxDisplay < 0 {
		return apperrors.NewConfigError("max display cannot be negative: %d", c.MaxDisplay)
	}
	if c.TUI && c.Quiet {
		return apperrors.NewConfigError("--tui and --quiet cannot be combined")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if !slices.Contains(availableEngines, c.Engine) {
		return apperrors.NewConfigError("unrecognized engine: '%s'. Valid engines are: [%s]", c.Engine, strings.Join(availableEngines, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// PICALC_ environment overrides for flags not given explicitly, and
// validates the result.
//
// Parameters:
//   - programName: The name used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage are printed.
//   - availableEngines: The valid engine names.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp for -h, the flag error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableEngines []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	engineHelp := fmt.Sprintf("Engine to use: one of [%s].", strings.Join(availableEngines, ", "))

	config := AppConfig{}
	fs.Uint64Var(&config.BasePrecision, "precision", DefaultPrecision, "Starting precision in decimal digits.")
	fs.Uint64Var(&config.StepInterval, "step-interval", DefaultStepInterval, "Number of terms between precision raises.")
	fs.Uint64Var(&config.StepAmount, "step-amount", DefaultStepAmount, "Digits added at each precision raise.")
	fs.DurationVar(&config.TimeLimit, "time-limit", NoTimeLimit, "Stop after this duration (negative for no limit).")
	fs.StringVar(&config.Engine, "engine", DefaultEngine, engineHelp)
	fs.IntVar(&config.Workers, "workers", 0, "Chunk workers for the chunked engine (0 = number of CPUs).")
	fs.IntVar(&config.ChunkSize, "chunk-size", DefaultChunkSize, "Terms per worker per batch for the chunked engine.")
	fs.Uint64Var(&config.MaxIterations, "max-iterations", 0, "Stop after this many terms (0 = unbounded).")
	fs.IntVar(&config.MaxDisplay, "max-display", DefaultMaxDisplay, "Maximum digits printed on the terminal.")

	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Save, "save", true, "Save the result to pi_calculation_<timestamp>.txt (-save=false to skip).")
	fs.BoolVar(&config.LiveDigits, "live-digits", false, "Redraw the digits every 2s during the run.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the digits.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print every computed digit.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose (shorthand).")
	fs.BoolVar(&config.Details, "details", false, "Display memory statistics with the result.")
	fs.BoolVar(&config.Details, "d", false, "Details (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.TUI, "tui", false, "Run the interactive dashboard.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Prompt for the time limit before starting.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error or disabled.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Engine = strings.ToLower(config.Engine)
	config.LogLevel = strings.ToLower(config.LogLevel)
	if err := config.Validate(availableEngines); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}
