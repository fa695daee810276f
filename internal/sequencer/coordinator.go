package sequencer

// fetchPhase is the progress of the current fetch attempt.
type fetchPhase int

const (
	phaseIdle fetchPhase = iota
	phaseAwaiting
	phaseFactDelay
	phaseSettled
)

// Coordinator owns the timeline state. It is not safe for concurrent use;
// drivers serialize calls to Start, Dispatch and Close.
type Coordinator struct {
	opts  Options
	state State

	attempt uint64
	phase   fetchPhase

	generation uint64
	source     string
	offset     int

	started bool
	closed  bool
}

// New creates a Coordinator with zero option fields replaced by their
// defaults. Nothing runs until Start. With SkipBoot set the boot sequence is
// already finished and every boot line is visible.
//
// Parameters:
//   - opts: The timeline configuration.
//
// Returns:
//   - *Coordinator: A coordinator in its initial state.
func New(opts Options) *Coordinator {
	opts = opts.withDefaults()
	c := &Coordinator{opts: opts}
	c.state.Boot.Active = !opts.SkipBoot
	if opts.SkipBoot {
		c.state.Boot.Step = len(opts.BootMessages) + 1
	}
	c.state.Cursor.Visible = true
	c.state.Theme.Mode = opts.Theme
	return c
}

// Options returns the effective options.
func (c *Coordinator) Options() Options { return c.opts }

// Start arms the boot and cursor timers. Calling it twice, or after Close,
// is a no-op.
//
// Returns:
//   - []Command: The Schedule commands for the first boot step and cursor tick.
func (c *Coordinator) Start() []Command {
	if c.started || c.closed {
		return nil
	}
	c.started = true

	cmds := []Command{Schedule{Key: TimerCursor, After: c.opts.CursorPeriod, Msg: CursorTickMsg{}}}
	if c.state.Boot.Active {
		cmds = append(cmds, Schedule{Key: TimerBoot, After: c.opts.BootStep, Msg: BootTickMsg{}})
	}
	return cmds
}

// Dispatch applies msg to the state and returns the commands it implies.
// Messages from a superseded attempt or reveal generation are dropped, as is
// every message after Close.
//
// Parameters:
//   - msg: A timer expiry, user intent or fetch outcome.
//
// Returns:
//   - []Command: The timers to arm or disarm and fetches to start, in order.
//     Nil when msg changed nothing.
func (c *Coordinator) Dispatch(msg Msg) []Command {
	if c.closed {
		return nil
	}

	switch msg := msg.(type) {
	case BootTickMsg:
		return c.bootTick()
	case BootDoneMsg:
		return c.bootDone()
	case CursorTickMsg:
		return c.cursorTick()
	case ThemeToggledMsg:
		c.state.Theme.Mode = c.state.Theme.Mode.Toggle()
		return nil
	case FetchRequestedMsg:
		return c.fetchRequested()
	case FetchSucceededMsg:
		return c.fetchSucceeded(msg)
	case FetchFailedMsg:
		return c.fetchFailed(msg)
	case FactReadyMsg:
		return c.factReady(msg)
	case TypeTickMsg:
		return c.typeTick(msg)
	}
	return nil
}

// Close tears the timeline down and disarms every timer slot. Later messages,
// including timers that were already in flight, are ignored.
//
// Returns:
//   - []Command: A Cancel for every timer slot on the first call, nil after.
func (c *Coordinator) Close() []Command {
	if c.closed {
		return nil
	}
	c.closed = true
	cmds := make([]Command, 0, len(AllTimers))
	for _, k := range AllTimers {
		cmds = append(cmds, Cancel{Key: k})
	}
	return cmds
}

// Closed reports whether Close has been called.
func (c *Coordinator) Closed() bool { return c.closed }

// Attempt returns the number of the latest fetch attempt (0 before the first).
func (c *Coordinator) Attempt() uint64 { return c.attempt }

// State returns a snapshot of the timeline.
func (c *Coordinator) State() State {
	s := c.state
	s.Boot.Lines = c.bootLines()
	return s
}
