package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/meowgic/internal/catfact"
	apperrors "github.com/agbru/meowgic/internal/errors"
	"github.com/agbru/meowgic/internal/logging"
	"github.com/agbru/meowgic/internal/sequencer"
)

// Model is the root bubbletea model. The timeline lives in the coordinator;
// the model only translates keys into messages and effects into commands.
type Model struct {
	coord   *sequencer.Coordinator
	fetcher catfact.Fetcher
	logger  logging.Logger

	keymap  KeyMap
	help    help.Model
	spinner spinner.Model
	styles  styles

	ctx    context.Context
	cancel context.CancelFunc

	width    int
	height   int
	quitting bool
	exitCode int
}

// NewModel creates a model around coord. Fetches inherit parentCtx.
func NewModel(parentCtx context.Context, coord *sequencer.Coordinator, fetcher catfact.Fetcher, logger logging.Logger) Model {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	ctx, cancel := context.WithCancel(parentCtx)

	s := newStyles(coord.State().Theme.Mode)
	h := help.New()
	h.Styles = s.help

	return Model{
		coord:    coord,
		fetcher:  fetcher,
		logger:   logger,
		keymap:   DefaultKeyMap(),
		help:     h,
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		styles:   s,
		ctx:      ctx,
		cancel:   cancel,
		exitCode: apperrors.ExitSuccess,
	}
}

// Init starts the boot and cursor timers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.toCmd(m.coord.Start()),
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
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.coord.State().Fetch.Loading {
			return m, nil // let the spinner chain die until the next fetch
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sequencer.Msg:
		return m.dispatch(msg)

	case ContextCancelledMsg:
		if !m.quitting {
			m.logger.Debug("session context cancelled")
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.shutdown()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Fetch):
		return m.dispatch(sequencer.FetchRequestedMsg{})

	case key.Matches(msg, m.keymap.Theme):
		return m.dispatch(sequencer.ThemeToggledMsg{})
	}
	return m, nil
}

// dispatch feeds msg to the coordinator and keeps the presentation in step
// with the resulting state.
func (m Model) dispatch(msg sequencer.Msg) (tea.Model, tea.Cmd) {
	wasLoading := m.coord.State().Fetch.Loading
	cmd := m.toCmd(m.coord.Dispatch(msg))

	st := m.coord.State()
	if st.Theme.Mode != m.styles.mode {
		m.styles = newStyles(st.Theme.Mode)
		m.help.Styles = m.styles.help
	}
	if st.Fetch.Loading && !wasLoading {
		cmd = tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

// shutdown tears the timeline down and cancels any in-flight fetch. It is
// safe to call more than once.
func (m Model) shutdown() {
	m.coord.Close()
	m.cancel()
}

// State returns the current timeline snapshot.
func (m Model) State() sequencer.State {
	return m.coord.State()
}

// ExitCode returns the process exit code once the program has stopped.
func (m Model) ExitCode() int {
	return m.exitCode
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, opts sequencer.Options, fetcher catfact.Fetcher, logger logging.Logger) int {
	model := NewModel(ctx, sequencer.New(opts), fetcher, logger)
	defer model.shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		model.logger.Error("terminal program failed", err)
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}
