package sequencer

// bootTick reveals one more boot line. The sequence needs len(messages)+1
// ticks before the final hold, so it ends at (N+1)*BootStep + BootHold.
func (c *Coordinator) bootTick() []Command {
	b := &c.state.Boot
	if !b.Active {
		return nil
	}
	n := len(c.opts.BootMessages)
	if b.Step > n {
		return nil
	}

	b.Step++
	if b.Step <= n {
		return []Command{Schedule{Key: TimerBoot, After: c.opts.BootStep, Msg: BootTickMsg{}}}
	}
	return []Command{Schedule{Key: TimerBoot, After: c.opts.BootHold, Msg: BootDoneMsg{}}}
}

func (c *Coordinator) bootDone() []Command {
	b := &c.state.Boot
	if !b.Active || b.Step <= len(c.opts.BootMessages) {
		return nil
	}
	b.Active = false
	return nil
}

func (c *Coordinator) bootLines() []string {
	msgs := c.opts.BootMessages
	visible := min(c.state.Boot.Step+1, len(msgs))
	lines := make([]string, visible)
	copy(lines, msgs[:visible])
	return lines
}

// BootCursorLine returns the index of the boot line that carries the cursor,
// or -1 when the cursor sits past the last line.
func (s State) BootCursorLine() int {
	if s.Boot.Step < len(s.Boot.Lines) {
		return s.Boot.Step
	}
	return -1
}
