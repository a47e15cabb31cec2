// This file contains environment variable overrides for the configuration.

package config

import (
	"flag"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// MaxTimeLimitSeconds is the largest whole number of seconds a
// time.Duration holds.
const MaxTimeLimitSeconds = float64(math.MaxInt64 / int64(time.Second))

// SecondsToDuration converts a number of seconds to a duration. It reports
// false for NaN and for magnitudes beyond MaxTimeLimitSeconds.
func SecondsToDuration(secs float64) (time.Duration, bool) {
	if math.IsNaN(secs) || math.Abs(secs) > MaxTimeLimitSeconds {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the given aliases was explicitly set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the PICALC_ prefix) to the flag
// name(s) it shadows and a function applying the value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment overrides.
// Unparseable values are ignored and the flag default stays in effect.
var envOverrides = []envOverride{
	// Numeric overrides
	{"PRECISION", []string{"precision"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.BasePrecision = parsed
		}
	}},
	{"STEP_INTERVAL", []string{"step-interval"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.StepInterval = parsed
		}
	}},
	{"STEP_AMOUNT", []string{"step-amount"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.StepAmount = parsed
		}
	}},
	{"WORKERS", []string{"workers"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Workers = parsed
		}
	}},
	{"CHUNK_SIZE", []string{"chunk-size"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.ChunkSize = parsed
		}
	}},
	{"MAX_ITERATIONS", []string{"max-iterations"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.MaxIterations = parsed
		}
	}},
	{"MAX_DISPLAY", []string{"max-display"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.MaxDisplay = parsed
		}
	}},

	// Duration overrides. A bare number is read as seconds.
	{"TIME_LIMIT", []string{"time-limit"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.TimeLimit = parsed
		} else if secs, err := strconv.ParseFloat(v, 64); err == nil {
			if d, ok := SecondsToDuration(secs); ok {
				c.TimeLimit = d
			}
		}
	}},

	// String overrides
	{"ENGINE", []string{"engine"}, func(c *AppConfig, v string) {
		c.Engine = v
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) {
		c.OutputFile = v
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) {
		c.LogLevel = v
	}},

	// Boolean overrides
	{"SAVE", []string{"save"}, func(c *AppConfig, v string) {
		c.Save = parseBoolEnv(v, c.Save)
	}},
	{"LIVE_DIGITS", []string{"live-digits"}, func(c *AppConfig, v string) {
		c.LiveDigits = parseBoolEnv(v, c.LiveDigits)
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"DETAILS", []string{"details", "d"}, func(c *AppConfig, v string) {
		c.Details = parseBoolEnv(v, c.Details)
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
}

// parseBoolEnv accepts "true", "1", "yes" as true and "false", "0", "no" as
// false (case-insensitive). Anything else returns defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment values for flags that were not set
// on the command line. Priority: CLI flags > environment > defaults.
//
// Supported variables (all prefixed with PICALC_):
//   - PRECISION, STEP_INTERVAL, STEP_AMOUNT, WORKERS, CHUNK_SIZE,
//     MAX_ITERATIONS, MAX_DISPLAY, TIME_LIMIT, ENGINE, OUTPUT,
//     METRICS_ADDR, LOG_LEVEL, SAVE, QUIET, VERBOSE, DETAILS, TUI
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
