package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Mode selects one of the two user-facing palettes.
type Mode int

const (
	// Dark is the default phosphor-green on charcoal palette.
	Dark Mode = iota
	// Light is the ink-on-paper palette.
	Light
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// ParseMode parses "dark" or "light" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dark":
		return Dark, nil
	case "light":
		return Light, nil
	}
	return Dark, fmt.Errorf("unknown theme %q (want dark or light)", s)
}

// Palette maps each semantic role of the terminal to a colour.
type Palette struct {
	Name        string
	Background  lipgloss.TerminalColor
	Card        lipgloss.TerminalColor
	Border      lipgloss.TerminalColor
	Text        lipgloss.TerminalColor
	Accent      lipgloss.TerminalColor
	ButtonBg    lipgloss.TerminalColor
	ButtonText  lipgloss.TerminalColor
	ButtonGlow  lipgloss.TerminalColor
	Error       lipgloss.TerminalColor
	Placeholder lipgloss.TerminalColor
	Prompt      lipgloss.TerminalColor
	Cursor      lipgloss.TerminalColor
	Subheading  lipgloss.TerminalColor
	BootText    lipgloss.TerminalColor
	Echo        lipgloss.TerminalColor
}

// Window-bar dots, identical in both palettes.
var (
	DotClose    = lipgloss.Color("#ff5f56")
	DotMinimize = lipgloss.Color("#ffbd2e")
	DotZoom     = lipgloss.Color("#27c93f")
)

var (
	// DarkPalette is the retro phosphor palette.
	DarkPalette = Palette{
		Name:        "dark",
		Background:  lipgloss.Color("#181a1b"),
		Card:        lipgloss.Color("#23272a"),
		Border:      lipgloss.Color("#444b53"),
		Text:        lipgloss.Color("#39FF14"),
		Accent:      lipgloss.Color("#FFD700"),
		ButtonBg:    lipgloss.Color("#181a1b"),
		ButtonText:  lipgloss.Color("#39FF14"),
		ButtonGlow:  lipgloss.Color("#FFD700"),
		Error:       lipgloss.Color("#ff5555"),
		Placeholder: lipgloss.Color("#7afc7a"),
		Prompt:      lipgloss.Color("#FFD700"),
		Cursor:      lipgloss.Color("#39FF14"),
		Subheading:  lipgloss.Color("#ffffff"),
		BootText:    lipgloss.Color("#ffffff"),
		Echo:        lipgloss.Color("#FFD700"),
	}

	// LightPalette is the paper palette.
	LightPalette = Palette{
		Name:        "light",
		Background:  lipgloss.Color("#f7f7f7"),
		Card:        lipgloss.Color("#ffffff"),
		Border:      lipgloss.Color("#bdbdbd"),
		Text:        lipgloss.Color("#1a1a1a"),
		Accent:      lipgloss.Color("#1845ad"),
		ButtonBg:    lipgloss.Color("#ffffff"),
		ButtonText:  lipgloss.Color("#1845ad"),
		ButtonGlow:  lipgloss.Color("#FFD700"),
		Error:       lipgloss.Color("#d7263d"),
		Placeholder: lipgloss.Color("#1845ad"),
		Prompt:      lipgloss.Color("#FFD700"),
		Cursor:      lipgloss.Color("#1845ad"),
		Subheading:  lipgloss.Color("#1845ad"),
		BootText:    lipgloss.Color("#000000"),
		Echo:        lipgloss.Color("#1845ad"),
	}

	// NoColorPalette disables all colours.
	// lipgloss.NoColor{} renders text with the terminal's default colors.
	NoColorPalette = Palette{
		Name:        "none",
		Background:  lipgloss.NoColor{},
		Card:        lipgloss.NoColor{},
		Border:      lipgloss.NoColor{},
		Text:        lipgloss.NoColor{},
		Accent:      lipgloss.NoColor{},
		ButtonBg:    lipgloss.NoColor{},
		ButtonText:  lipgloss.NoColor{},
		ButtonGlow:  lipgloss.NoColor{},
		Error:       lipgloss.NoColor{},
		Placeholder: lipgloss.NoColor{},
		Prompt:      lipgloss.NoColor{},
		Cursor:      lipgloss.NoColor{},
		Subheading:  lipgloss.NoColor{},
		BootText:    lipgloss.NoColor{},
		Echo:        lipgloss.NoColor{},
	}

	colorDisabled bool
	themeMutex    sync.RWMutex
)

// PaletteFor returns the palette for mode, or NoColorPalette when colours
// have been disabled via InitTheme.
func PaletteFor(mode Mode) Palette {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if colorDisabled {
		return NoColorPalette
	}
	if mode == Light {
		return LightPalette
	}
	return DarkPalette
}

// ColorsEnabled reports whether palettes carry colours.
func ColorsEnabled() bool {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return !colorDisabled
}

// InitTheme initializes colour support based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		colorDisabled = true
		return
	}

	// Any value, even empty, disables colours (no-color.org)
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		colorDisabled = true
		return
	}

	colorDisabled = false
}
