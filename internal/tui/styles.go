package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/meowgic/internal/ui"
)

// styles holds every style of the terminal for one palette. It is rebuilt
// whenever the theme changes.
type styles struct {
	mode ui.Mode

	card      lipgloss.Style
	title     lipgloss.Style
	sub       lipgloss.Style
	prompt    lipgloss.Style
	cursor    lipgloss.Style
	boot      lipgloss.Style
	text      lipgloss.Style
	errorText lipgloss.Style
	hint      lipgloss.Style
	echo      lipgloss.Style
	output    lipgloss.Style
	button    lipgloss.Style
	busy      lipgloss.Style
	indicator lipgloss.Style
	dots      [3]lipgloss.Style
	help      help.Styles
}

func newStyles(mode ui.Mode) styles {
	p := ui.PaletteFor(mode)

	s := styles{mode: mode}

	s.card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Background(p.Card).
		Foreground(p.Text).
		Padding(1, 3)

	s.title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text)

	s.sub = lipgloss.NewStyle().
		Foreground(p.Subheading)

	s.prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Prompt)

	s.cursor = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Cursor)

	s.boot = lipgloss.NewStyle().
		Foreground(p.BootText)

	s.text = lipgloss.NewStyle().
		Foreground(p.Text)

	s.errorText = lipgloss.NewStyle().
		Foreground(p.Error)

	s.hint = lipgloss.NewStyle().
		Foreground(p.Placeholder)

	s.echo = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Echo)

	s.output = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.button = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.ButtonText).
		Background(p.ButtonBg).
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.ButtonText).
		Padding(0, 3)

	// Loading inverts the button, as hovering did on the web.
	s.busy = s.button.
		Foreground(p.ButtonBg).
		Background(p.ButtonText).
		BorderForeground(p.ButtonGlow)

	s.indicator = lipgloss.NewStyle().
		Foreground(p.Text)

	if ui.ColorsEnabled() {
		s.dots = [3]lipgloss.Style{
			lipgloss.NewStyle().Foreground(ui.DotClose),
			lipgloss.NewStyle().Foreground(ui.DotMinimize),
			lipgloss.NewStyle().Foreground(ui.DotZoom),
		}
	}

	s.help = help.New().Styles
	s.help.ShortKey = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	s.help.ShortDesc = lipgloss.NewStyle().Foreground(p.Subheading)
	s.help.ShortSeparator = lipgloss.NewStyle().Foreground(p.Border)

	return s
}
