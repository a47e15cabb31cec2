package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Save writes to DefaultOutputFileName when OutputFile is empty.
	Save bool
	// Quiet prints only the digits.
	Quiet bool
	// Verbose prints every computed decimal.
	Verbose bool
	// MaxDisplay limits the decimals printed on the terminal.
	MaxDisplay int
}

// Path returns the file the result should be written to at now, or "" when
// no file is requested.
func (c OutputConfig) Path(now time.Time) string {
	switch {
	case c.OutputFile != "":
		return c.OutputFile
	case c.Save:
		return DefaultOutputFileName(now)
	}
	return ""
}

// DefaultOutputFileName returns pi_calculation_YYYYMMDD_HHMMSS.txt for now.
func DefaultOutputFileName(now time.Time) string {
	return "pi_calculation_" + now.Format("20060102_150405") + ".txt"
}

// FormatResultFile renders the file content: four header lines, a blank
// line and the full decimal expansion.
func FormatResultFile(result chudnovsky.Result) string {
	var b strings.Builder
	b.WriteString("Pi Calculation\n")
	fmt.Fprintf(&b, "Achieved Precision: ~%d digits\n", result.Precision)
	fmt.Fprintf(&b, "Completed Iterations: %d\n", result.Iterations)
	fmt.Fprintf(&b, "Calculation Time: %s\n\n", format.FormatSeconds(result.Elapsed))
	b.WriteString(format.DecimalExpansion(result.Pi, result.Precision))
	return b.String()
}

// WriteResultToFile writes result to path, creating parent directories.
func WriteResultToFile(result chudnovsky.Result, path string) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(FormatResultFile(result)), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayQuietResult prints only the decimal expansion.
func DisplayQuietResult(result chudnovsky.Result, out io.Writer) {
	fmt.Fprintln(out, format.DecimalExpansion(result.Pi, result.Precision))
}

// DisplayResultWithConfig displays result according to config and writes
// the result file when one is requested. It returns the path written, if any.
func DisplayResultWithConfig(result chudnovsky.Result, config OutputConfig, now time.Time, out io.Writer) (string, error) {
	if config.Quiet {
		DisplayQuietResult(result, out)
	} else {
		CLIResultPresenter{MaxDisplay: config.MaxDisplay, Verbose: config.Verbose}.PresentResult(result, out)
	}

	path := config.Path(now)
	if path == "" {
		return "", nil
	}
	if err := WriteResultToFile(result, path); err != nil {
		return "", err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "%sResult saved in %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
	}
	return path, nil
}
