package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/ui"
)

// PromptTimeLimit asks whether to bound the run and for how many seconds.
// Any answer other than "y" means no limit, reported as a negative
// duration. A non-numeric, negative or out-of-range number of seconds is a
// ConfigError.
func PromptTimeLimit(in io.Reader, out io.Writer) (time.Duration, error) {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, ui.ColorGreen()+"Set time limit? (y/n): "+ui.ColorReset())
	answer, err := readLine(reader)
	if err != nil {
		return 0, err
	}
	if strings.ToLower(answer) != "y" {
		return -1, nil
	}

	fmt.Fprint(out, ui.ColorGreen()+"Time limit in seconds: "+ui.ColorReset())
	value, err := readLine(reader)
	if err != nil {
		return 0, err
	}
	secs, err := strconv.ParseFloat(value, 64)
	if err != nil || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, apperrors.NewConfigError("Please enter a valid number: %q", value)
	}
	limit, ok := config.SecondsToDuration(secs)
	if !ok {
		return 0, apperrors.NewConfigError("time limit too large: %s seconds (maximum %.0f)", value, config.MaxTimeLimitSeconds)
	}
	return limit, nil
}

// readLine returns the next trimmed line. A final line without a newline is
// accepted; EOF before any input is an error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
