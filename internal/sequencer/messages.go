package sequencer

import "time"

// Msg is an input to the Coordinator.
type Msg interface {
	sequencerMsg()
}

// BootTickMsg advances the boot sequence by one step.
type BootTickMsg struct{}

// BootDoneMsg ends the boot sequence after the final hold.
type BootDoneMsg struct{}

// CursorTickMsg toggles the cursor.
type CursorTickMsg struct{}

// ThemeToggledMsg flips between the dark and light palettes.
type ThemeToggledMsg struct{}

// FetchRequestedMsg is the user trigger for a new fact.
type FetchRequestedMsg struct{}

// FetchSucceededMsg carries the fact returned for Attempt.
type FetchSucceededMsg struct {
	Attempt uint64
	Text    string
}

// FetchFailedMsg reports that Attempt failed.
type FetchFailedMsg struct {
	Attempt uint64
	Err     error
}

// FactReadyMsg releases the fact of Attempt for reveal once the command echo
// has had time to render.
type FactReadyMsg struct {
	Attempt uint64
	Text    string
}

// TypeTickMsg reveals one more rune of the source identified by Generation.
type TypeTickMsg struct {
	Generation uint64
}

func (BootTickMsg) sequencerMsg()       {}
func (BootDoneMsg) sequencerMsg()       {}
func (CursorTickMsg) sequencerMsg()     {}
func (ThemeToggledMsg) sequencerMsg()   {}
func (FetchRequestedMsg) sequencerMsg() {}
func (FetchSucceededMsg) sequencerMsg() {}
func (FetchFailedMsg) sequencerMsg()    {}
func (FactReadyMsg) sequencerMsg()      {}
func (TypeTickMsg) sequencerMsg()       {}

// TimerKey names one of the Coordinator's timer slots. At most one timer per
// key is pending at any time.
type TimerKey int

const (
	TimerBoot TimerKey = iota
	TimerCursor
	TimerFactReady
	TimerType
)

// AllTimers lists every timer slot.
var AllTimers = []TimerKey{TimerBoot, TimerCursor, TimerFactReady, TimerType}

// String returns the slot name.
func (k TimerKey) String() string {
	switch k {
	case TimerBoot:
		return "boot"
	case TimerCursor:
		return "cursor"
	case TimerFactReady:
		return "fact-ready"
	case TimerType:
		return "type"
	}
	return "unknown"
}

// Command is an effect the driver must perform.
type Command interface {
	sequencerCommand()
}

// Schedule arms the timer slot Key to deliver Msg after After, replacing any
// timer pending in the same slot.
type Schedule struct {
	Key   TimerKey
	After time.Duration
	Msg   Msg
}

// Cancel disarms the timer slot Key.
type Cancel struct {
	Key TimerKey
}

// Fetch asks the driver to retrieve a fact and answer with a
// FetchSucceededMsg or FetchFailedMsg tagged with Attempt.
type Fetch struct {
	Attempt uint64
}

func (Schedule) sequencerCommand() {}
func (Cancel) sequencerCommand()   {}
func (Fetch) sequencerCommand()    {}
