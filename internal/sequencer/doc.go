// Package sequencer coordinates the terminal's timeline: the boot sequence,
// the fetch of a cat fact, the typewriter reveal of that fact and the
// blinking cursor.
//
// The Coordinator is a plain state machine. Every transition is an explicit
// Msg handed to Dispatch, which mutates the state and answers with the
// Commands the driver must carry out: arm or disarm a keyed timer, or start a
// network fetch. Drivers own the timers. The bubbletea model in package tui is
// one driver; Runner, backed by a Clock, is the other.
//
// Messages that belong to a superseded fetch attempt or reveal source are
// dropped by the Coordinator itself, so a driver that cannot cancel its
// timers (tea.Tick) still never observes a stale write.
package sequencer
