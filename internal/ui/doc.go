// Package ui holds the color themes shared by the CLI, the usage message and
// the TUI dashboard.
package ui
