// Package logging provides the structured logging interface used by the π
// calculator. Engines, the orchestrator and the metrics server log through the
// Logger interface so the backend (zerolog or the standard library) can be
// swapped without touching call sites.
package logging
