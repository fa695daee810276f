package sequencer

func (c *Coordinator) cursorTick() []Command {
	c.state.Cursor.Visible = !c.state.Cursor.Visible
	return []Command{Schedule{Key: TimerCursor, After: c.opts.CursorPeriod, Msg: CursorTickMsg{}}}
}
