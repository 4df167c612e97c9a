// Package tui provides a Bubble Tea terminal user interface for hitster-cards.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/hitster-cards/internal/config"
	"github.com/handiism/hitster-cards/internal/generate"
	"github.com/handiism/hitster-cards/internal/year"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateLoading
	StateBudget
	StateVerifying
	StateConfirm
	StateOverride
	StateRendering
	StateComplete
	StateError
)

// BuildFunc creates the pipeline manager for one run.
type BuildFunc func(ctx context.Context, kind generate.SourceKind, onProgress func(generate.ProgressEvent)) (*generate.Manager, error)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   generate.ProgressLevel
}

// eventSink collects progress events from pipeline goroutines until the
// next tick drains them.
type eventSink struct {
	mu     sync.Mutex
	events []generate.ProgressEvent
}

func (s *eventSink) push(e generate.ProgressEvent) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

func (s *eventSink) drain() []generate.ProgressEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.events
	s.events = nil
	return out
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	settings  *config.Settings
	build     BuildFunc
	sink      *eventSink
	logs      []LogEntry
	err       error
	notice    string

	ctx    context.Context
	cancel context.CancelFunc

	manager *generate.Manager
	tracks  int
	report  *year.Report
	review  []year.ReviewItem
	summary *generate.Summary

	// Options
	local   bool
	verbose bool

	width int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings, build BuildFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "https://open.spotify.com/playlist/..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		settings:  settings,
		build:     build,
		sink:      &eventSink{},
		ctx:       ctx,
		cancel:    cancel,
	}
}

// State returns the current wizard step.
func (m Model) State() State { return m.state }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, tickLogs())
}

// Message types
type (
	// LoadDoneMsg is sent when the playlist has been fetched.
	LoadDoneMsg struct {
		Manager *generate.Manager
		Err     error
	}

	// VerifyDoneMsg is sent when the year lookups finish.
	VerifyDoneMsg struct {
		Report *year.Report
		Err    error
	}

	// RenderDoneMsg is sent when the deck has been written.
	RenderDoneMsg struct {
		Summary *generate.Summary
		Err     error
	}

	// TickMsg drains pending progress events.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case TickMsg:
		for _, e := range m.sink.drain() {
			m.addLog(e)
		}
		cmds = append(cmds, tickLogs())

	case LoadDoneMsg:
		if m.state != StateLoading {
			return m, nil
		}
		if msg.Err != nil {
			return m.fail(msg.Err), nil
		}
		m.manager = msg.Manager
		if p := msg.Manager.Playlist(); p != nil {
			m.tracks = p.Len()
		}
		if m.manager.CanVerify() {
			m.state = StateBudget
			m.prompt("lookups, 0 to skip", strconv.Itoa(m.settings.Verification.MaxLookups))
			return m, nil
		}
		return m.toOverride(), nil

	case VerifyDoneMsg:
		if m.state != StateVerifying {
			return m, nil
		}
		if msg.Err != nil {
			return m.fail(msg.Err), nil
		}
		m.report = msg.Report
		if len(msg.Report.Changes) == 0 {
			m.notice = "No year changes proposed."
			return m.toOverride(), nil
		}
		m.state = StateConfirm
		return m, nil

	case RenderDoneMsg:
		if m.state != StateRendering {
			return m, nil
		}
		if msg.Err != nil {
			return m.fail(msg.Err), nil
		}
		m.summary = msg.Summary
		m.state = StateComplete
		return m, nil
	}

	if m.inputActive() {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keys that drive the wizard. handled is false when the
// key should also reach the text input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit, true

	case "esc":
		switch m.state {
		case StateInput:
			return m, tea.Quit, true
		case StateLoading, StateVerifying, StateRendering:
			m.cancel()
			return m.fail(errors.New("cancelled by user")), nil, true
		}

	case "tab":
		if m.state == StateInput {
			m.local = !m.local
			if m.local {
				m.textInput.Placeholder = "/path/to/playlist.m3u8"
			} else {
				m.textInput.Placeholder = "https://open.spotify.com/playlist/..."
			}
			return m, nil, true
		}

	case "ctrl+t":
		if m.state == StateInput {
			m.verbose = !m.verbose
			return m, nil, true
		}

	case "enter":
		return m.submit()

	case "y", "n":
		if m.state == StateConfirm {
			if msg.String() == "y" {
				applied := m.manager.ApplyVerified(m.report.Changes)
				m.notice = fmt.Sprintf("Applied %d verified year(s).", len(applied))
			} else {
				m.notice = "Verified years discarded."
			}
			return m.toOverride(), nil, true
		}

	case "q":
		if m.state == StateComplete || m.state == StateError {
			return m, tea.Quit, true
		}

	case "r":
		if m.state == StateComplete || m.state == StateError {
			m.cancel()
			return m.reset(), nil, true
		}
	}
	return m, nil, false
}

// submit handles enter for the input-driven steps.
func (m Model) submit() (Model, tea.Cmd, bool) {
	value := strings.TrimSpace(m.textInput.Value())

	switch m.state {
	case StateInput:
		if value == "" {
			return m, nil, true
		}
		m.state = StateLoading
		return m, tea.Batch(m.load(value), m.spinner.Tick), true

	case StateBudget:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			m.notice = fmt.Sprintf("%q is not a lookup count", value)
			return m, nil, true
		}
		if n == 0 {
			m.notice = "Verification skipped."
			return m.toOverride(), nil, true
		}
		m.manager.SetMaxLookups(n)
		m.state = StateVerifying
		return m, tea.Batch(m.verify(), m.spinner.Tick), true

	case StateOverride:
		if value == "" {
			m.state = StateRendering
			return m, tea.Batch(m.render(), m.spinner.Tick), true
		}
		idx, yr, err := generate.ParseOverride(value)
		if err == nil {
			_, _, err = m.manager.ApplyOverride(idx, yr)
		}
		if err != nil {
			m.notice = err.Error()
			return m, nil, true
		}
		m.notice = fmt.Sprintf("Track %d set to %s.", idx+1, yr)
		return m.toOverride(), nil, true
	}
	return m, nil, false
}

func (m Model) toOverride() Model {
	m.state = StateOverride
	m.review = nil
	if r := m.settings.ToYearRange(); r != nil && m.manager != nil {
		items, err := m.manager.Review(*r)
		if err != nil {
			return m.fail(err)
		}
		m.review = items
	}
	m.prompt("N=YEAR, enter to render", "")
	return m
}

func (m *Model) prompt(placeholder, value string) {
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	m.textInput.Focus()
}

func (m Model) inputActive() bool {
	return m.state == StateInput || m.state == StateBudget || m.state == StateOverride
}

func (m Model) fail(err error) Model {
	m.state = StateError
	m.err = err
	return m
}

func (m Model) reset() Model {
	next := NewModel(m.settings, m.build)
	next.local = m.local
	next.verbose = m.verbose
	next.width = m.width
	return next
}

func (m *Model) addLog(e generate.ProgressEvent) {
	if e.Level == generate.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: e.Message, Level: e.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func tickLogs() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// load builds the manager and fetches the playlist.
func (m Model) load(ref string) tea.Cmd {
	ctx, build, sink := m.ctx, m.build, m.sink
	kind := generate.SourceSpotify
	if m.local {
		kind = generate.SourceLocal
	}
	return func() tea.Msg {
		manager, err := build(ctx, kind, sink.push)
		if err != nil {
			return LoadDoneMsg{Err: err}
		}
		if _, err := manager.Load(ctx, ref); err != nil {
			return LoadDoneMsg{Err: err}
		}
		return LoadDoneMsg{Manager: manager}
	}
}

func (m Model) verify() tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		report, err := manager.Verify(ctx)
		return VerifyDoneMsg{Report: report, Err: err}
	}
}

func (m Model) render() tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		summary, err := manager.Render(ctx)
		return RenderDoneMsg{Summary: summary, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🃏 Hitster Cards"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Turn a playlist into printable music cards"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateLoading:
		b.WriteString(m.viewBusy("Fetching playlist..."))
	case StateBudget:
		b.WriteString(m.viewBudget())
	case StateVerifying:
		b.WriteString(m.viewBusy("Verifying release years..."))
	case StateConfirm:
		b.WriteString(m.viewConfirm())
	case StateOverride:
		b.WriteString(m.viewOverride())
	case StateRendering:
		b.WriteString(m.viewBusy("Rendering cards..."))
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func check(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	if m.local {
		b.WriteString(subtitleStyle.Render("Enter local playlist path:"))
	} else {
		b.WriteString(subtitleStyle.Render("Enter Spotify playlist URL:"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Local .m3u playlist (tab)\n", check(m.local)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+t)\n", check(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Player: %s", m.settings.Player.URL)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewBusy(label string) string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(label))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewBudget() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("Loaded %d tracks.", m.tracks)))
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Verify suspicious release years with MusicBrainz?"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Each lookup takes about a second."))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewConfirm() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d proposed year change(s):", len(m.report.Changes))))
	b.WriteString("\n")
	for _, c := range m.report.Checks {
		if c.Outcome != year.OutcomeChanged {
			continue
		}
		b.WriteString(trackStyle.Render(fmt.Sprintf("  #%d %s - %s: %s → %s", c.Index+1, c.Artist, c.Title, c.Current, c.Found)))
		b.WriteString("\n")
	}
	if n := len(m.report.Skipped); n > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("  %d suspicious track(s) left unchecked", n)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("Apply these changes? (y/n)"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewOverride() string {
	var b strings.Builder

	if r := m.settings.ToYearRange(); r != nil {
		if len(m.review) == 0 {
			b.WriteString(successStyle.Render(fmt.Sprintf("All years within %d-%d.", r.Min, r.Max)))
			b.WriteString("\n")
		} else {
			b.WriteString(warningStyle.Render(fmt.Sprintf("%d track(s) to review:", len(m.review))))
			b.WriteString("\n")
			for _, it := range m.review {
				b.WriteString(trackStyle.Render(fmt.Sprintf("  #%d %s - %s: %s", it.Index+1, it.Artist, it.Title, it.Describe(*r))))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(subtitleStyle.Render("Override a year, or press enter to render:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	b.WriteString(m.renderNotice())

	return b.String()
}

func (m Model) viewComplete() string {
	s := m.summary
	body := fmt.Sprintf(
		"✨ Cards generated!\n\n"+
			"File: %s\n"+
			"Tracks: %d\n"+
			"Pages: %d double-sided (flip on long edge)\n"+
			"Year changes: %d",
		s.OutputPath,
		s.Tracks,
		s.Pages,
		len(s.Changes),
	)
	if n := len(s.MissingCodes); n > 0 {
		body += fmt.Sprintf("\nCards without code: %d", n)
	}
	if s.KeptTempDir != "" {
		body += fmt.Sprintf("\nTemporary files kept in %s", s.KeptTempDir)
	}
	if n := len(s.CleanupFailures); n > 0 {
		body += fmt.Sprintf("\nTemporary files not removed: %d", n)
	}
	return boxStyle.Render(body)
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderNotice() string {
	if m.notice == "" {
		return "\n"
	}
	return dimStyle.Render(m.notice) + "\n\n"
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case generate.LevelError:
			style = errorStyle
			prefix = "✗"
		case generate.LevelWarning:
			style = warningStyle
			prefix = "!"
		case generate.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case generate.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: local playlist • ctrl+t: verbose • esc: quit"
	case StateLoading, StateVerifying, StateRendering:
		return "esc: cancel"
	case StateBudget:
		return "enter: continue • ctrl+c: quit"
	case StateConfirm:
		return "y: apply • n: discard"
	case StateOverride:
		return "enter: submit override or render • ctrl+c: quit"
	case StateComplete, StateError:
		return "r: start over • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings, build BuildFunc) error {
	p := tea.NewProgram(NewModel(settings, build), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
