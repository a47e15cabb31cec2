package orchestration

import (
	"io"
	"sync"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/progress"
)

// ProgressDisplay renders snapshots while a run is in progress. It decouples
// the orchestration layer from spinners, dashboards and plain output.
type ProgressDisplay interface {
	// DisplayProgress consumes snapshots until the channel is closed and then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, snapshots <-chan progress.Snapshot, out io.Writer)
}

// ProgressDisplayFunc adapts a function to ProgressDisplay.
type ProgressDisplayFunc func(wg *sync.WaitGroup, snapshots <-chan progress.Snapshot, out io.Writer)

// DisplayProgress calls f.
func (f ProgressDisplayFunc) DisplayProgress(wg *sync.WaitGroup, snapshots <-chan progress.Snapshot, out io.Writer) {
	f(wg, snapshots, out)
}

// NullProgressDisplay drains the channel without output. Used in quiet mode.
type NullProgressDisplay struct{}

// DisplayProgress drains the channel.
func (NullProgressDisplay) DisplayProgress(wg *sync.WaitGroup, snapshots <-chan progress.Snapshot, _ io.Writer) {
	defer wg.Done()
	for range snapshots {
	}
}

// ResultPresenter renders the outcome of a run.
type ResultPresenter interface {
	// PresentResult displays a run that produced at least one snapshot.
	PresentResult(result chudnovsky.Result, out io.Writer)
	// PresentNoResult explains that the run stopped before any snapshot.
	PresentNoResult(result chudnovsky.Result, out io.Writer)
}
