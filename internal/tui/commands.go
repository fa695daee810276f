package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/meowgic/internal/catfact"
	"github.com/agbru/meowgic/internal/logging"
	"github.com/agbru/meowgic/internal/sequencer"
)

// ContextCancelledMsg signals that the session context was cancelled.
type ContextCancelledMsg struct {
	Err error
}

// toCmd translates coordinator effects into bubbletea commands.
//
// tea.Tick cannot be stopped, so Cancel has nothing to do here: a timer that
// outlives its slot delivers a message carrying a retired attempt or
// generation, and the coordinator drops it.
func (m Model) toCmd(cmds []sequencer.Command) tea.Cmd {
	var out []tea.Cmd
	for _, c := range cmds {
		switch c := c.(type) {
		case sequencer.Schedule:
			out = append(out, scheduleCmd(c))
		case sequencer.Fetch:
			out = append(out, fetchCmd(m.ctx, m.fetcher, m.logger, c.Attempt))
		case sequencer.Cancel:
		}
	}
	return tea.Batch(out...)
}

func scheduleCmd(s sequencer.Schedule) tea.Cmd {
	msg := s.Msg
	return tea.Tick(s.After, func(time.Time) tea.Msg { return msg })
}

// fetchCmd runs one request off the UI goroutine and reports the outcome
// tagged with attempt.
func fetchCmd(ctx context.Context, f catfact.Fetcher, logger logging.Logger, attempt uint64) tea.Cmd {
	return func() tea.Msg {
		fact, err := f.Fetch(ctx)
		if err != nil {
			logger.Error("fetch attempt failed", err, logging.Uint64("attempt", attempt))
			return sequencer.FetchFailedMsg{Attempt: attempt, Err: err}
		}
		logger.Debug("fetch attempt succeeded",
			logging.Uint64("attempt", attempt),
			logging.Int("length", fact.Length))
		return sequencer.FetchSucceededMsg{Attempt: attempt, Text: fact.Text}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
