package sequencer

import "unicode/utf8"

// setSource replaces the typewriter source. The previous reveal is cancelled
// and its generation retired, so none of its ticks can land on the new text.
func (c *Coordinator) setSource(text string) []Command {
	c.generation++
	c.source = text
	c.offset = 0
	c.state.Reveal = RevealState{Source: text}

	cmds := []Command{Cancel{Key: TimerType}}
	if text == "" || c.state.Fetch.Error != "" {
		return cmds
	}
	return append(cmds, c.nextType())
}

// typeTick reveals the next rune. Offsets advance by whole UTF-8 sequences,
// so Revealed is always a byte prefix of Source.
func (c *Coordinator) typeTick(msg TypeTickMsg) []Command {
	if msg.Generation != c.generation || c.state.Fetch.Error != "" {
		return nil
	}
	if c.offset >= len(c.source) {
		return nil
	}

	_, size := utf8.DecodeRuneInString(c.source[c.offset:])
	c.offset += size
	c.state.Reveal.Revealed = c.source[:c.offset]
	if c.offset < len(c.source) {
		return []Command{c.nextType()}
	}
	return nil
}

func (c *Coordinator) nextType() Command {
	return Schedule{
		Key:   TimerType,
		After: c.opts.TypeDelay(),
		Msg:   TypeTickMsg{Generation: c.generation},
	}
}
