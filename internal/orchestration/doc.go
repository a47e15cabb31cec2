// Package orchestration runs a π engine in the background and coordinates
// everything around it: the time limit, signal-driven cancellation, the
// fan-out of snapshots to the caller's reporter and to a progress display,
// and the bounded polling loop that waits for the engine to finish.
package orchestration
