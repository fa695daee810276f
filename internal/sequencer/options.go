package sequencer

import (
	"math/rand/v2"
	"time"

	"github.com/agbru/meowgic/internal/ui"
)

// Timeline defaults.
const (
	DefaultBootStep     = 900 * time.Millisecond
	DefaultBootHold     = 1200 * time.Millisecond
	DefaultFactDelay    = 500 * time.Millisecond
	DefaultCursorPeriod = 500 * time.Millisecond
	DefaultTypeDelayMin = 40 * time.Millisecond
	DefaultTypeDelayMax = 60 * time.Millisecond
)

// DefaultBootMessages is the boot script.
var DefaultBootMessages = []string{
	"Booting Meowgic Terminal... ",
	"Loading modules... ",
	"Establishing connection to Cat Fact Server... ",
	"Welcome to Meowgic Facts!",
}

// DelayFunc yields the delay before the next typewriter rune.
type DelayFunc func() time.Duration

// UniformDelay returns delays drawn uniformly from [lo, hi). If hi <= lo every
// delay is lo.
func UniformDelay(lo, hi time.Duration) DelayFunc {
	if hi <= lo {
		return FixedDelay(lo)
	}
	return func() time.Duration {
		return lo + rand.N(hi-lo)
	}
}

// FixedDelay returns a DelayFunc that always yields d.
func FixedDelay(d time.Duration) DelayFunc {
	return func() time.Duration { return d }
}

// Options configures a Coordinator. Zero fields take their defaults.
type Options struct {
	BootMessages []string
	BootStep     time.Duration
	BootHold     time.Duration

	// SkipBoot starts the session with the boot sequence already finished.
	SkipBoot bool

	FactDelay    time.Duration
	CursorPeriod time.Duration
	TypeDelay    DelayFunc

	// HoldLoading keeps Loading set until the fact is released for reveal,
	// instead of clearing it as soon as the response arrives.
	HoldLoading bool

	Theme ui.Mode
}

func (o Options) withDefaults() Options {
	if len(o.BootMessages) == 0 {
		o.BootMessages = DefaultBootMessages
	}
	if o.BootStep <= 0 {
		o.BootStep = DefaultBootStep
	}
	if o.BootHold <= 0 {
		o.BootHold = DefaultBootHold
	}
	if o.FactDelay <= 0 {
		o.FactDelay = DefaultFactDelay
	}
	if o.CursorPeriod <= 0 {
		o.CursorPeriod = DefaultCursorPeriod
	}
	if o.TypeDelay == nil {
		o.TypeDelay = UniformDelay(DefaultTypeDelayMin, DefaultTypeDelayMax)
	}
	return o
}
