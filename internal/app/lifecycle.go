package app

import (
	"context"
	"os/signal"
	"syscall"
)

// SetupSignals returns a context cancelled on SIGINT (Ctrl+C) or SIGTERM.
// The returned function stops listening for signals and should be deferred.
func SetupSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
