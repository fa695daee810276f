package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/meowgic/internal/catfact"
	apperrors "github.com/agbru/meowgic/internal/errors"
	"github.com/agbru/meowgic/internal/sequencer"
	"github.com/agbru/meowgic/internal/ui"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTheme = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func quickOptions() sequencer.Options {
	return sequencer.Options{
		SkipBoot:     true,
		FactDelay:    time.Millisecond,
		CursorPeriod: time.Hour,
		TypeDelay:    sequencer.FixedDelay(time.Millisecond),
	}
}

func factFetcher(text string) catfact.Fetcher {
	return catfact.FetcherFunc(func(context.Context) (catfact.Fact, error) {
		return catfact.Fact{Text: text, Length: len(text)}, nil
	})
}

func newTestModel(t *testing.T, opts sequencer.Options, f catfact.Fetcher) Model {
	t.Helper()
	m := NewModel(context.Background(), sequencer.New(opts), f, nil)
	t.Cleanup(m.shutdown)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// collect runs cmd, flattening batches, and returns the messages produced.
// Spinner ticks are dropped so the loop terminates.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

// pump delivers every message cmd produces, and the messages those produce,
// until the timeline is quiet.
func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := collect(cmd)
	for i := 0; len(queue) > 0; i++ {
		if i > 10_000 {
			t.Fatal("timeline did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		var next tea.Cmd
		m, next = update(t, m, msg)
		queue = append(queue, collect(next)...)
	}
	return m
}

func TestModel_BootView(t *testing.T) {
	m := newTestModel(t, sequencer.Options{}, factFetcher("x"))

	view := m.View()
	if !strings.Contains(view, sequencer.DefaultBootMessages[0]) {
		t.Errorf("boot view should show the first boot line:\n%s", view)
	}
	if strings.Contains(view, sequencer.DefaultBootMessages[1]) {
		t.Error("second boot line shown before the first tick")
	}
	if strings.Contains(view, Title) {
		t.Error("title shown while booting")
	}

	m, _ = update(t, m, sequencer.BootTickMsg{})
	if !strings.Contains(m.View(), sequencer.DefaultBootMessages[1]) {
		t.Error("second boot line missing after one tick")
	}
}

func TestModel_TriggerIgnoredDuringBoot(t *testing.T) {
	m := newTestModel(t, sequencer.Options{}, factFetcher("x"))

	m, cmd := update(t, m, keyEnter)
	if cmd != nil {
		t.Error("trigger during boot should not produce commands")
	}
	if m.State().Fetch.Loading || m.State().Fetch.ShowCommand {
		t.Errorf("trigger during boot changed fetch state: %+v", m.State().Fetch)
	}
}

func TestModel_FetchAndReveal(t *testing.T) {
	const fact = "Cats sleep for 70% of their lives."
	m := newTestModel(t, quickOptions(), factFetcher(fact))

	view := m.View()
	if !strings.Contains(view, Placeholder) || !strings.Contains(view, ButtonLabel) {
		t.Fatalf("idle view should show the button and placeholder:\n%s", view)
	}
	if strings.Contains(view, CommandEcho) {
		t.Error("command echo shown before the first trigger")
	}

	m, cmd := update(t, m, keyEnter)
	if !m.State().Fetch.Loading {
		t.Fatal("enter did not start a fetch")
	}
	if view := m.View(); !strings.Contains(view, LoadingLabel) || strings.Contains(view, CommandEcho) {
		t.Errorf("loading view wrong:\n%s", view)
	}

	m = pump(t, m, cmd)

	st := m.State()
	if st.Fetch.Fact != fact || st.Reveal.Revealed != fact {
		t.Fatalf("state after reveal = %+v", st)
	}
	view = m.View()
	for _, want := range []string{CommandEcho, fact, ButtonLabel} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, Placeholder) {
		t.Error("placeholder shown next to a fact")
	}
	if strings.Contains(view, fact+cursorGlyph) {
		t.Error("cursor should not trail a complete fact")
	}
}

func TestModel_FetchFailure(t *testing.T) {
	f := catfact.FetcherFunc(func(context.Context) (catfact.Fact, error) {
		return catfact.Fact{}, errors.New("boom")
	})
	m := newTestModel(t, quickOptions(), f)

	m, cmd := update(t, m, keyEnter)
	m = pump(t, m, cmd)

	view := m.View()
	if !strings.Contains(view, apperrors.FetchFailedMessage) {
		t.Errorf("view should show the failure:\n%s", view)
	}
	if strings.Contains(view, CommandEcho) || strings.Contains(view, Placeholder) {
		t.Errorf("error takes precedence over echo and placeholder:\n%s", view)
	}

	// The next trigger clears the error.
	m, _ = update(t, m, keyEnter)
	if m.State().Fetch.Error != "" {
		t.Error("new trigger did not clear the error")
	}
}

func TestModel_ThemeToggleTwice(t *testing.T) {
	m := newTestModel(t, quickOptions(), factFetcher("x"))
	before := m.State()

	if !strings.Contains(m.View(), sunGlyph) {
		t.Error("dark theme should offer the sun")
	}

	m, _ = update(t, m, keyTheme)
	if m.State().Theme.Mode != ui.Light {
		t.Fatalf("mode = %v, want light", m.State().Theme.Mode)
	}
	if m.styles.mode != ui.Light {
		t.Error("styles not rebuilt for the light palette")
	}
	if !strings.Contains(m.View(), moonGlyph) {
		t.Error("light theme should offer the moon")
	}

	m, _ = update(t, m, keyTheme)
	after := m.State()
	if after.Theme != before.Theme || after.Fetch != before.Fetch || after.Reveal != before.Reveal {
		t.Errorf("double toggle changed state: before %+v, after %+v", before, after)
	}
}

func TestModel_StaleMessagesIgnored(t *testing.T) {
	m := newTestModel(t, quickOptions(), factFetcher("fresh"))

	m, cmd := update(t, m, keyEnter)
	m = pump(t, m, cmd)
	want := m.State()

	for _, msg := range []tea.Msg{
		sequencer.FetchSucceededMsg{Attempt: 0, Text: "stale"},
		sequencer.FetchFailedMsg{Attempt: 0, Err: errors.New("stale")},
		sequencer.FactReadyMsg{Attempt: 0, Text: "stale"},
		sequencer.TypeTickMsg{Generation: 0},
	} {
		var cmd tea.Cmd
		m, cmd = update(t, m, msg)
		if cmd != nil {
			t.Errorf("%T produced commands", msg)
		}
	}
	if got := m.State(); got.Fetch != want.Fetch || got.Reveal != want.Reveal {
		t.Errorf("stale messages changed state: %+v", got)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, quickOptions(), factFetcher("x"))

	m, cmd := update(t, m, keyQuit)
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should be tea.Quit")
	}
	if !m.coord.Closed() {
		t.Error("coordinator not closed on quit")
	}
	if m.ctx.Err() == nil {
		t.Error("fetch context not cancelled on quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
	if m.ExitCode() != apperrors.ExitSuccess {
		t.Errorf("exit code = %d", m.ExitCode())
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewModel(ctx, sequencer.New(quickOptions()), factFetcher("x"), nil)
	defer m.shutdown()

	cancel()
	msg := watchContextCmd(m.ctx)()
	m, cmd := update(t, m, msg)

	if cmd == nil {
		t.Fatal("cancellation should quit")
	}
	if m.ExitCode() != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", m.ExitCode(), apperrors.ExitErrorCanceled)
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t, quickOptions(), factFetcher("x"))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})

	if m.contentWidth() != cardMaxWidth {
		t.Errorf("contentWidth() = %d, want %d", m.contentWidth(), cardMaxWidth)
	}
	if lines := strings.Count(m.View(), "\n") + 1; lines != 50 {
		t.Errorf("view has %d lines, want the full height", lines)
	}
}
