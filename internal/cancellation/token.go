// Package cancellation provides the write-once stop flag shared between a
// running engine and whoever wants it to stop.
package cancellation

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Token is a write-once cancellation flag. Cancel may be called any number of
// times from any goroutine; the first call wins and the rest are no-ops.
type Token struct {
	cancelled atomic.Bool
	once      sync.Once
	done      chan struct{}
}

// New returns an unset token.
func New() *Token {
	return &Token{done: make(chan struct{})}
}

// Cancel sets the token.
func (t *Token) Cancel() {
	t.once.Do(func() {
		t.cancelled.Store(true)
		close(t.done)
	})
}

// Cancelled reports whether Cancel has been called.
func (t *Token) Cancelled() bool {
	return t.cancelled.Load()
}

// Done returns a channel closed when the token is set.
func (t *Token) Done() <-chan struct{} {
	return t.done
}

// CancelAfter sets the token once d has elapsed. A non-positive d sets it
// immediately. The returned function stops the timer if it has not fired.
func (t *Token) CancelAfter(d time.Duration) (stop func() bool) {
	if d <= 0 {
		t.Cancel()
		return func() bool { return false }
	}
	timer := time.AfterFunc(d, t.Cancel)
	return timer.Stop
}

// Watch sets the token when ctx is done. The returned function detaches the
// token from ctx and reports whether it did so before ctx finished.
func (t *Token) Watch(ctx context.Context) (stop func() bool) {
	return context.AfterFunc(ctx, t.Cancel)
}
