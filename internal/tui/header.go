package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/meowgic/internal/ui"
)

const (
	dotGlyph  = "●"
	sunGlyph  = "☀"
	moonGlyph = "☾"
)

// themeIndicator shows the palette a toggle would switch to.
func themeIndicator(mode ui.Mode) string {
	if mode == ui.Dark {
		return sunGlyph
	}
	return moonGlyph
}

// renderHeader draws the terminal bar: three window dots on the left and the
// theme indicator on the right, padded to width.
func renderHeader(s styles, width int) string {
	dots := make([]string, len(s.dots))
	for i, st := range s.dots {
		dots[i] = st.Render(dotGlyph)
	}
	left := strings.Join(dots, " ")
	right := s.indicator.Render(themeIndicator(s.mode))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
