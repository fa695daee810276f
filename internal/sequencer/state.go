package sequencer

import "github.com/agbru/meowgic/internal/ui"

// BootState tracks the one-time boot animation.
type BootState struct {
	// Step counts boot ticks since startup.
	Step int
	// Active is true until the boot sequence has finished. It never reverts.
	Active bool
	// Lines are the boot messages visible at Step.
	Lines []string
}

// FetchState tracks the current fetch attempt.
//
// A settled attempt has exactly one of Error or Fact set.
type FetchState struct {
	// Loading is set from the trigger until the attempt settles, or until the
	// response arrives when HoldLoading is off.
	Loading bool
	// Error is the user-facing failure message, empty when none.
	Error string
	// Fact is the fetched text once it has been released for reveal.
	Fact string
	// ShowCommand is set by the first trigger and stays set.
	ShowCommand bool
}

// RevealState tracks the typewriter. Revealed is always a prefix of Source.
// Revealed grows one rune per typewriter tick.
type RevealState struct {
	// Source is the text being revealed, empty when nothing is.
	Source string
	// Revealed is the visible prefix of Source.
	Revealed string
}

// Complete reports whether the whole source is visible.
func (r RevealState) Complete() bool { return r.Revealed == r.Source }

// CursorState is the blinking caret.
type CursorState struct {
	Visible bool
}

// ThemeState is the selected palette.
type ThemeState struct {
	Mode ui.Mode
}

// State is a snapshot of the whole timeline. It is a value: the Coordinator
// copies it out and later transitions never mutate a snapshot already handed
// to a renderer.
type State struct {
	Boot   BootState
	Fetch  FetchState
	Reveal RevealState
	Cursor CursorState
	Theme  ThemeState
}

// CanTrigger reports whether a fetch trigger would be accepted.
//
// Returns:
//   - bool: True once boot has finished and no attempt is loading.
func (s State) CanTrigger() bool {
	return !s.Boot.Active && !s.Fetch.Loading
}

// CommandEchoVisible reports whether the "$ get-cat-fact" line is shown.
func (s State) CommandEchoVisible() bool {
	return s.Fetch.ShowCommand && !s.Fetch.Loading && s.Fetch.Error == ""
}
