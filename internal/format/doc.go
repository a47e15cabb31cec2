// Package format holds the pure formatting helpers shared by the CLI and the
// TUI: durations, remaining time, progress bars, iteration rates and the
// block layout used to print digits of π.
package format
