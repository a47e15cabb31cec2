package parallel

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// TestErrorCollectorHighContention verifies that ErrorCollector captures
// exactly one error when many chunk workers fail at once.
func TestErrorCollectorHighContention(t *testing.T) {
	t.Parallel()
	for round := 0; round < 50; round++ {
		var ec ErrorCollector
		var wg sync.WaitGroup
		numGoroutines := 500

		barrier := make(chan struct{})

		wg.Add(numGoroutines)
		for i := 0; i < numGoroutines; i++ {
			go func(id int) {
				defer wg.Done()
				<-barrier
				ec.SetError(fmt.Errorf("chunk %d failed", id))
			}(i)
		}

		close(barrier)
		wg.Wait()

		err := ec.Err()
		if err == nil {
			t.Fatalf("round %d: expected an error, got nil", round)
		}
		if !strings.HasPrefix(err.Error(), "chunk ") {
			t.Errorf("round %d: unexpected error format: %v", round, err)
		}
	}
}

// TestErrorCollectorNilIgnored verifies that nil errors never mask a real one.
func TestErrorCollectorNilIgnored(t *testing.T) {
	t.Parallel()
	var ec ErrorCollector
	var wg sync.WaitGroup
	barrier := make(chan struct{})

	wg.Add(400)
	for i := 0; i < 200; i++ {
		go func() {
			defer wg.Done()
			<-barrier
			ec.SetError(nil)
		}()
	}
	for i := 0; i < 200; i++ {
		go func(id int) {
			defer wg.Done()
			<-barrier
			ec.SetError(fmt.Errorf("real error %d", id))
		}(i)
	}

	close(barrier)
	wg.Wait()

	if err := ec.Err(); err == nil || !strings.HasPrefix(err.Error(), "real error ") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorCollectorReset(t *testing.T) {
	t.Parallel()
	var ec ErrorCollector
	ec.SetError(errors.New("first batch"))
	ec.Reset()
	if ec.Err() != nil {
		t.Fatal("Reset should clear the error")
	}
	ec.SetError(errors.New("second batch"))
	if ec.Err() == nil || ec.Err().Error() != "second batch" {
		t.Fatalf("expected second batch error, got %v", ec.Err())
	}
}

func TestErrorCollectorGo(t *testing.T) {
	t.Parallel()

	t.Run("collects returned errors", func(t *testing.T) {
		t.Parallel()
		var ec ErrorCollector
		var wg sync.WaitGroup
		sentinel := errors.New("boom")
		ec.Go(&wg, func() error { return nil }, nil)
		ec.Go(&wg, func() error { return sentinel }, nil)
		wg.Wait()
		if !errors.Is(ec.Err(), sentinel) {
			t.Fatalf("expected sentinel, got %v", ec.Err())
		}
	})

	t.Run("converts panics with recoverFn", func(t *testing.T) {
		t.Parallel()
		var ec ErrorCollector
		var wg sync.WaitGroup
		ec.Go(&wg, func() error { panic("NaN") }, func(r any) error {
			return fmt.Errorf("recovered: %v", r)
		})
		wg.Wait()
		if ec.Err() == nil || ec.Err().Error() != "recovered: NaN" {
			t.Fatalf("unexpected error: %v", ec.Err())
		}
	})
}
