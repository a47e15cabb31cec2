// Package parallel provides the small concurrency helpers shared by the
// chunked engine's worker batches.
package parallel

import "sync"

// ErrorCollector keeps the first error reported by a batch of goroutines.
// It is safe for concurrent use.
//
// Usage:
//
//	var ec parallel.ErrorCollector
//	var wg sync.WaitGroup
//	for _, chunk := range chunks {
//	    wg.Add(1)
//	    go func() {
//	        defer wg.Done()
//	        ec.SetError(process(chunk))
//	    }()
//	}
//	wg.Wait()
//	if err := ec.Err(); err != nil {
//	    return err
//	}
type ErrorCollector struct {
	once sync.Once
	mu   sync.Mutex
	err  error
}

// SetError records err if no error has been recorded yet. Nil is ignored.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.once.Do(func() {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
	})
}

// Err returns the first recorded error, or nil.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Reset clears the collector so it can serve the next batch. It must not be
// called while goroutines of the previous batch are still running.
func (c *ErrorCollector) Reset() {
	c.once = sync.Once{}
	c.err = nil
}

// Go runs fn in a new goroutine tracked by wg and records its error.
// A panic in fn is converted by recoverFn when recoverFn is non-nil;
// otherwise it propagates.
func (c *ErrorCollector) Go(wg *sync.WaitGroup, fn func() error, recoverFn func(any) error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if recoverFn != nil {
			defer func() {
				if r := recover(); r != nil {
					c.SetError(recoverFn(r))
				}
			}()
		}
		c.SetError(fn())
	}()
}
