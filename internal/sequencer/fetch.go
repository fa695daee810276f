package sequencer

import (
	"strings"

	apperrors "github.com/agbru/meowgic/internal/errors"
)

// fetchRequested starts a new attempt. Any reveal or pending fact of an
// earlier attempt is discarded before the new request goes out.
func (c *Coordinator) fetchRequested() []Command {
	if !c.state.CanTrigger() {
		return nil
	}

	c.attempt++
	c.phase = phaseAwaiting
	c.state.Fetch = FetchState{Loading: true, ShowCommand: true}

	cmds := []Command{Cancel{Key: TimerFactReady}}
	cmds = append(cmds, c.setSource("")...)
	return append(cmds, Fetch{Attempt: c.attempt})
}

// fetchSucceeded holds the text back for FactDelay so the command echo shows
// first. Loading clears now unless HoldLoading is set. A blank text settles
// the attempt as a failure.
func (c *Coordinator) fetchSucceeded(msg FetchSucceededMsg) []Command {
	if msg.Attempt != c.attempt || c.phase != phaseAwaiting {
		return nil
	}
	if strings.TrimSpace(msg.Text) == "" {
		return c.settleFailed()
	}
	c.phase = phaseFactDelay
	if !c.opts.HoldLoading {
		c.state.Fetch.Loading = false
	}
	return []Command{Schedule{
		Key:   TimerFactReady,
		After: c.opts.FactDelay,
		Msg:   FactReadyMsg{Attempt: msg.Attempt, Text: msg.Text},
	}}
}

func (c *Coordinator) fetchFailed(msg FetchFailedMsg) []Command {
	if msg.Attempt != c.attempt || c.phase != phaseAwaiting {
		return nil
	}
	return c.settleFailed()
}

func (c *Coordinator) settleFailed() []Command {
	c.phase = phaseSettled
	c.state.Fetch.Loading = false
	c.state.Fetch.Fact = ""
	c.state.Fetch.Error = apperrors.FetchFailedMessage
	return c.setSource("")
}

func (c *Coordinator) factReady(msg FactReadyMsg) []Command {
	if msg.Attempt != c.attempt || c.phase != phaseFactDelay {
		return nil
	}
	c.phase = phaseSettled
	c.state.Fetch.Loading = false
	c.state.Fetch.Fact = msg.Text
	return c.setSource(msg.Text)
}
