package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// sender is the part of programRef the display needs.
type sender interface {
	Send(msg tea.Msg)
}

// TUIProgressDisplay implements orchestration.ProgressDisplay.
// It drains the snapshot channel and forwards each snapshot as a SnapshotMsg.
type TUIProgressDisplay struct {
	ref sender
}

// Verify interface compliance.
var _ orchestration.ProgressDisplay = (*TUIProgressDisplay)(nil)

// DisplayProgress forwards snapshots until the channel is closed, then sends
// ProgressDoneMsg.
func (t *TUIProgressDisplay) DisplayProgress(wg *sync.WaitGroup, snapshots <-chan progress.Snapshot, _ io.Writer) {
	defer wg.Done()

	for snap := range snapshots {
		t.ref.Send(SnapshotMsg{
			Snapshot:  snap,
			Expansion: format.DecimalExpansion(snap.Pi, snap.Precision),
			At:        time.Now(),
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}
