package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// runStatus is the state shown in the footer.
type runStatus int

const (
	statusRunning runStatus = iota
	statusStopping
	statusDone
	statusError
)

// FooterModel renders the key hints and the run status.
type FooterModel struct {
	keymap KeyMap
	status runStatus
	paused bool
	width  int
}

// NewFooterModel creates a footer for keymap.
func NewFooterModel(keymap KeyMap) FooterModel {
	return FooterModel{keymap: keymap}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the frozen indicator.
func (f *FooterModel) SetPaused(paused bool) { f.paused = paused }

// SetStatus updates the run status.
func (f *FooterModel) SetStatus(s runStatus) { f.status = s }

// View renders the footer.
func (f FooterModel) View() string {
	hints := make([]string, 0, 3)
	for _, b := range []key.Binding{f.keymap.Quit, f.keymap.Pause, f.keymap.Up} {
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := " " + strings.Join(hints, footerDescStyle.Render("  •  "))

	var status string
	switch {
	case f.status == statusError:
		status = statusErrorStyle.Render("ERROR")
	case f.status == statusDone:
		status = statusDoneStyle.Render("DONE")
	case f.status == statusStopping:
		status = statusPausedStyle.Render("STOPPING")
	case f.paused:
		status = statusPausedStyle.Render("FROZEN")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}

	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(status)-1, 1)
	return left + spaces(gap) + status
}
