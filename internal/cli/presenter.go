package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
	"github.com/agbru/picalc/internal/ui"
)

// separatorWidth matches the width of the banner rules.
const separatorWidth = 60

// CLIProgressDisplay shows a spinner with the live status line.
type CLIProgressDisplay struct {
	// TimeLimit drives the remaining-time bar. Negative means no limit.
	TimeLimit time.Duration
	// Live, when set, also redraws the digits of the latest snapshot.
	Live *LiveDigits
}

var _ orchestration.ProgressDisplay = CLIProgressDisplay{}

// DisplayProgress implements orchestration.ProgressDisplay.
func (d CLIProgressDisplay) DisplayProgress(wg *sync.WaitGroup, snapshots <-chan progress.Snapshot, out io.Writer) {
	displayProgress(wg, snapshots, d.TimeLimit, d.Live, out)
}

// CLIColorProvider feeds theme colors to apperrors.HandleRunError.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

// Yellow returns the warning color.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Red returns the error color.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Reset returns the reset code.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// CLIResultPresenter prints the digit layout and the run summary.
type CLIResultPresenter struct {
	// MaxDisplay limits the decimals printed. Ignored when Verbose is set.
	MaxDisplay int
	// Verbose prints every computed decimal.
	Verbose bool
}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentResult implements orchestration.ResultPresenter.
func (p CLIResultPresenter) PresentResult(result chudnovsky.Result, out io.Writer) {
	maxDisplay := p.MaxDisplay
	if p.Verbose {
		maxDisplay = -1
	}
	DisplayResult(result, maxDisplay, out)
}

// PresentNoResult implements orchestration.ResultPresenter.
func (CLIResultPresenter) PresentNoResult(_ chudnovsky.Result, out io.Writer) {
	DisplayNoResult(out)
}

// DisplayBanner prints the welcome banner.
func DisplayBanner(out io.Writer) {
	rule := strings.Repeat("=", separatorWidth)
	title := "Continuous Pi Calculation"
	pad := (separatorWidth - len(title)) / 2
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorCyan(), rule, ui.ColorReset())
	fmt.Fprintf(out, "%s%s%s%s\n", strings.Repeat(" ", pad), ui.ColorBold(), title, ui.ColorReset())
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorCyan(), rule, ui.ColorReset())
	fmt.Fprintln(out, "This program calculates Pi continuously with increasing precision")
	fmt.Fprintln(out, "until the set time expires or you stop the calculation.")
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorCyan(), rule, ui.ColorReset())
}

// DisplayPi prints the digit layout of pi between two rules.
func DisplayPi(result chudnovsky.Result, maxDisplay int, out io.Writer) {
	rule := strings.Repeat("-", separatorWidth)
	fmt.Fprintln(out, "Current Pi Calculation:")
	fmt.Fprintln(out, rule)
	expansion := format.DecimalExpansion(result.Pi, result.Precision)
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorMagenta(), format.FormatPiDigits(expansion, maxDisplay), ui.ColorReset())
	fmt.Fprintln(out, rule)
}

// DisplayResult prints the digits followed by the run summary.
func DisplayResult(result chudnovsky.Result, maxDisplay int, out io.Writer) {
	DisplayPi(result, maxDisplay, out)
	fmt.Fprintf(out, "\n%sCalculation completed after %s%s\n", ui.ColorGreen(), format.FormatSeconds(result.Elapsed), ui.ColorReset())
	fmt.Fprintf(out, "Completed Iterations: %s%d%s\n", ui.ColorBlue(), result.Iterations, ui.ColorReset())
	fmt.Fprintf(out, "Achieved Precision: %s~%d digits%s\n", ui.ColorBlue(), result.Precision, ui.ColorReset())
}

// DisplayNoResult explains that the run stopped before the first snapshot.
func DisplayNoResult(out io.Writer) {
	fmt.Fprintf(out, "%sNo results (calculation was stopped too early)%s\n", ui.ColorYellow(), ui.ColorReset())
}

// DisplayTimeLimitReached announces that the time limit stopped the run.
func DisplayTimeLimitReached(out io.Writer) {
	fmt.Fprintf(out, "\n%sTime limit reached, calculation will be stopped...%s\n", ui.ColorYellow(), ui.ColorReset())
}

// DisplayInterrupted announces a manual interruption.
func DisplayInterrupted(out io.Writer) {
	fmt.Fprintf(out, "\n%sCalculation manually interrupted...%s\n", ui.ColorYellow(), ui.ColorReset())
}

// DisplayMemoryReport shows memory statistics after a run.
func DisplayMemoryReport(report metrics.MemoryReport, out io.Writer) {
	fmt.Fprintf(out, "\n%sMemory Stats:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(report.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(report.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", report.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(report.PauseTotalNs)/1e6)
}
