// Package progress defines the snapshot contract between a running π engine
// and its observers, along with the stock observers used by the CLI, the TUI
// and the metrics endpoint.
package progress

import "math/big"

// Snapshot is an intermediate approximation emitted by an engine.
//
// Pi is owned by the receiver: the engine never mutates it after emitting and
// keeps no reference to it.
type Snapshot struct {
	// Pi is the approximation computed at the precision in effect before the
	// raise that triggered this snapshot.
	Pi *big.Float
	// Iteration is the number of series terms completed after term zero.
	Iteration uint64
	// Precision is the working precision in decimal digits after the raise.
	Precision uint64
}

// Reporter receives snapshots. OnSnapshot runs synchronously on the engine
// goroutine, so implementations should return quickly.
type Reporter interface {
	OnSnapshot(s Snapshot)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Snapshot)

// OnSnapshot calls f(s).
func (f ReporterFunc) OnSnapshot(s Snapshot) { f(s) }

// Discard is a Reporter that ignores every snapshot.
var Discard Reporter = ReporterFunc(func(Snapshot) {})
