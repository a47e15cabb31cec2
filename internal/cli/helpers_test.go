package cli

import (
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/ui"
)

const piPrefix = "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899862803482534211706798214808651328230664709384460955058223172535940812848111745028410270193852110555964462294895493038196"

// mockSpinner records calls made by DisplayProgress.
type mockSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (m *mockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *mockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *mockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffixes = append(m.suffixes, suffix)
}

// testResult builds a result whose Pi carries digits significant digits.
func testResult(t *testing.T, digits uint64) chudnovsky.Result {
	t.Helper()
	pi, _, err := big.ParseFloat(piPrefix, 10, 1024, big.ToNearestEven)
	if err != nil {
		t.Fatalf("parse pi: %v", err)
	}
	return chudnovsky.Result{
		Pi:         pi,
		Precision:  digits,
		Iterations: 42,
		Snapshots:  4,
		Elapsed:    2500 * time.Millisecond,
		Engine:     "sequential",
	}
}

// withNoColor disables colors for the duration of the test.
func withNoColor(t *testing.T) {
	t.Helper()
	original := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(original) })
}
