package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/meowgic/internal/sequencer"
)

// Text shown by the terminal.
const (
	Title        = "Meowgic Facts"
	Subheading   = "Random Cat Facts"
	ButtonLabel  = "Get Cat Fact"
	LoadingLabel = "Loading..."
	CommandEcho  = "$ get-cat-fact"
	Placeholder  = "Press enter to get a random cat fact!"
	promptGlyph  = "> "
	cursorGlyph  = "_"
	cardMaxWidth = 64
	cardMinWidth = 28
	cardChrome   = 2 + 6 // border + horizontal padding
	defaultWidth = 80
)

// View renders the terminal card and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.coord.State()
	inner := m.contentWidth()

	var body string
	if st.Boot.Active {
		body = m.bootView(st)
	} else {
		body = m.mainView(st, inner)
	}

	card := m.styles.card.Width(inner + cardChrome - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, renderHeader(m.styles, inner), "", body),
	)
	view := lipgloss.JoinVertical(lipgloss.Center, card, m.help.View(m.keymap))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// contentWidth is the usable width inside the card.
func (m Model) contentWidth() int {
	w := m.width
	if w == 0 {
		w = defaultWidth
	}
	w -= cardChrome
	if w > cardMaxWidth {
		w = cardMaxWidth
	}
	if w < cardMinWidth {
		w = cardMinWidth
	}
	return w
}

// cursor renders the caret, or a blank of the same width while it blinks off.
func (m Model) cursor(visible bool) string {
	if !visible {
		return " "
	}
	return m.styles.cursor.Render(cursorGlyph)
}

func (m Model) bootView(st sequencer.State) string {
	at := st.BootCursorLine()
	lines := make([]string, len(st.Boot.Lines))
	for i, line := range st.Boot.Lines {
		l := m.styles.prompt.Render(promptGlyph) + m.styles.boot.Render(line)
		if i == at {
			l += m.cursor(st.Cursor.Visible)
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n")
}

func (m Model) mainView(st sequencer.State, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(Title),
		m.styles.sub.Render(Subheading),
		"",
		m.buttonView(st),
		"",
		m.outputView(st, width),
	)
}

func (m Model) buttonView(st sequencer.State) string {
	if st.Fetch.Loading {
		return m.styles.busy.Render(m.spinner.View() + " " + LoadingLabel)
	}
	return m.styles.button.Render(ButtonLabel)
}

// outputView renders the output box. Precedence: error, then the revealed
// fact, then the placeholder.
func (m Model) outputView(st sequencer.State, width int) string {
	var lines []string
	if st.CommandEchoVisible() {
		lines = append(lines, m.styles.echo.Render(CommandEcho))
	}

	prompt := m.styles.prompt.Render(promptGlyph)
	switch {
	case st.Fetch.Error != "":
		lines = append(lines, m.styles.errorText.Render(st.Fetch.Error))
	case st.Reveal.Revealed != "":
		l := prompt + m.styles.text.Render(st.Reveal.Revealed)
		if !st.Reveal.Complete() {
			l += m.cursor(st.Cursor.Visible)
		}
		lines = append(lines, l)
	default:
		lines = append(lines, prompt+m.styles.hint.Render(Placeholder)+m.cursor(st.Cursor.Visible))
	}

	return m.styles.output.Width(width - 2).Render(strings.Join(lines, "\n"))
}
