// Package tui implements the interactive dashboard for a continuous π run:
// live figures, the latest digits and a rate chart, built on bubbletea.
package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/cancellation"
	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
)

// Options configures a dashboard session.
type Options struct {
	// TimeLimit stops the run once elapsed. Negative means no limit.
	TimeLimit time.Duration
	// MaxDisplay limits the decimals shown. Negative means all.
	MaxDisplay int
	// Version is shown in the header.
	Version string
	// Reporter receives every snapshot in addition to the dashboard.
	Reporter progress.Reporter
	// Logger receives lifecycle messages. It must not write to the terminal.
	Logger logging.Logger
}

// ExecutionState holds the execution-related fields of a session.
type ExecutionState struct {
	token    *cancellation.Token
	engine   chudnovsky.Engine
	params   chudnovsky.Params
	opts     Options
	done     bool
	quitting bool
	result   chudnovsky.Result
	err      error
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// Layout constants for the dashboard.
const (
	headerHeight            = 1
	footerHeight            = 1
	minBodyHeight           = 6
	DigitsPanelWidthPercent = 60
	MetricsPanelHeight      = 7
	refreshInterval         = 500 * time.Millisecond
)

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// digitsWidth returns the width allocated to the digits panel.
func (l LayoutManager) digitsWidth() int {
	return l.width * DigitsPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column.
func (l LayoutManager) rightWidth() int {
	return l.width - l.digitsWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/2)
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	header  HeaderModel
	metrics MetricsModel
	chart   ChartModel
	digits  DigitsModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	ctx           context.Context
	tracker       *orchestration.ProgressTracker
	lastExpansion string
	ref           *programRef
	memory        *metrics.MemoryCollector
	paused        bool
}

// NewModel creates a dashboard for one run of engine.
func NewModel(ctx context.Context, engine chudnovsky.Engine, params chudnovsky.Params, opts Options) Model {
	keymap := DefaultKeyMap()
	return Model{
		header:  NewHeaderModel(opts.Version, opts.TimeLimit),
		metrics: NewMetricsModel(),
		chart:   NewChartModel(),
		digits:  NewDigitsModel(opts.MaxDisplay),
		footer:  NewFooterModel(keymap),
		keymap:  keymap,
		ExecutionState: ExecutionState{
			token:  cancellation.New(),
			engine: engine,
			params: params,
			opts:   opts,
		},
		ctx:     ctx,
		tracker: orchestration.NewProgressTracker(time.Now(), opts.TimeLimit),
		ref:     &programRef{},
		memory:  metrics.NewMemoryCollector(),
	}
}

// Init starts the run, the refresh ticker and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		sampleMemStatsCmd(m.memory),
		startRunCmd(m.ctx, m.ref, m.engine, m.params, m.opts, m.token),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case SnapshotMsg:
		view := m.tracker.Update(msg.Snapshot, msg.At)
		m.lastExpansion = msg.Expansion
		if !m.paused {
			m.metrics.SetView(view)
			m.chart.AddRate(view.Rate)
			m.digits.SetExpansion(msg.Expansion)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case RunCompleteMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		m.header.SetDone()
		m.metrics.SetView(m.tracker.View(time.Now()))
		if m.lastExpansion != "" {
			m.digits.SetExpansion(m.lastExpansion)
		}
		if msg.Err != nil {
			m.footer.SetStatus(statusError)
		} else {
			m.footer.SetStatus(statusDone)
		}
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			m.metrics.SetView(m.tracker.View(time.Time(msg)))
			return m, tea.Batch(sampleMemStatsCmd(m.memory), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		m.chart.AddHeap(msg.HeapAlloc)
		return m, nil

	case ContextCancelledMsg:
		return m.stop()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.stop()

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		if !m.paused {
			m.metrics.SetView(m.tracker.View(time.Now()))
			if m.lastExpansion != "" {
				m.digits.SetExpansion(m.lastExpansion)
			}
		}
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		m.digits.ScrollBy(-1)
	case key.Matches(msg, m.keymap.Down):
		m.digits.ScrollBy(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.digits.ScrollBy(-m.digits.PageSize())
	case key.Matches(msg, m.keymap.PageDown):
		m.digits.ScrollBy(m.digits.PageSize())
	}

	return m, nil
}

// stop cancels the run. The program exits once the engine has returned so
// the final result is never lost.
func (m Model) stop() (tea.Model, tea.Cmd) {
	m.token.Cancel()
	m.quitting = true
	if m.done {
		return m, tea.Quit
	}
	m.footer.SetStatus(statusStopping)
	return m, nil
}

// Result returns the outcome of the run once the program has exited.
func (m Model) Result() (chudnovsky.Result, error) {
	return m.result, m.err
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.digits.View(), rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.digits.SetSize(m.digitsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run shows the dashboard while engine computes π and returns the final
// result once the user has left the dashboard.
func Run(ctx context.Context, engine chudnovsky.Engine, params chudnovsky.Params, opts Options) (chudnovsky.Result, error) {
	// Rebuild styles from the current ui theme (set by the app via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, engine, params, opts)
	defer model.token.Cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return chudnovsky.Result{Engine: engine.Name()}, err
	}
	if m, ok := finalModel.(Model); ok {
		return m.Result()
	}
	return chudnovsky.Result{Engine: engine.Name()}, nil
}

// startRunCmd returns a tea.Cmd that drives the engine through orchestration.
func startRunCmd(ctx context.Context, ref *programRef, engine chudnovsky.Engine, params chudnovsky.Params, opts Options, token *cancellation.Token) tea.Cmd {
	return func() tea.Msg {
		runOpts := orchestration.RunOptions{
			TimeLimit: opts.TimeLimit,
			Token:     token,
			Logger:    opts.Logger,
		}
		result, err := orchestration.Execute(ctx, engine, params, runOpts, opts.Reporter, &TUIProgressDisplay{ref: ref}, io.Discard)
		return RunCompleteMsg{Result: result, Err: err}
	}
}

// tickCmd returns a command that sends a TickMsg after refreshInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd(collector *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{
			MemorySnapshot: collector.Snapshot(),
			NumGoroutine:   runtime.NumGoroutine(),
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
