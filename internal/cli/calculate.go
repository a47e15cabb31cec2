package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/picalc/internal/config"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/ui"
)

// PrintExecutionConfig displays the run configuration before starting.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	limit := "none"
	if cfg.HasTimeLimit() {
		limit = format.FormatSeconds(cfg.TimeLimit)
	}
	fmt.Fprintf(out, "Starting continuous Pi calculation with the %s%s%s engine (time limit: %s%s%s).\n",
		ui.ColorGreen(), cfg.Engine, ui.ColorReset(), ui.ColorYellow(), limit, ui.ColorReset())
	fmt.Fprintf(out, "Precision: %s%d%s digits, raised by %s%d%s every %s%d%s terms.\n",
		ui.ColorCyan(), cfg.BasePrecision, ui.ColorReset(),
		ui.ColorCyan(), cfg.StepAmount, ui.ColorReset(),
		ui.ColorCyan(), cfg.StepInterval, ui.ColorReset())
	if cfg.Engine == "chunked" {
		fmt.Fprintf(out, "Chunking: %s%d%s workers x %s%d%s terms per batch.\n",
			ui.ColorCyan(), cfg.Workers, ui.ColorReset(), ui.ColorCyan(), cfg.ChunkSize, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Press Ctrl+C to stop the calculation at any time.\n")
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
