package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/meowgic/internal/ui"
)

const (
	// SpinnerRefreshRate defines the refresh frequency of the loading spinner.
	SpinnerRefreshRate = 100 * time.Millisecond
	// LoadingLabel is shown next to the spinner while a request is in flight.
	LoadingLabel = "Loading..."
	// CommandEcho is printed once a fact has been fetched.
	CommandEcho = "$ get-cat-fact"

	promptGlyph = "> "
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This decouples the plain session from a specific spinner implementation,
// facilitating easier testing. It defines the essential controls for a
// spinner: starting, stopping, and updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the plain session.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

// newSpinner creates the spinner used by plain sessions. The library disables
// the animation on its own when standard output is not a terminal, so piped
// output stays free of control sequences.
var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// plainStyles holds the lipgloss styles of a plain session.
type plainStyles struct {
	prompt lipgloss.Style
	boot   lipgloss.Style
	echo   lipgloss.Style
	text   lipgloss.Style
}

// newPlainStyles derives the styles from a palette.
//
// Parameters:
//   - p: The palette of the configured theme.
//
// Returns:
//   - plainStyles: The styles for every printed element.
func newPlainStyles(p ui.Palette) plainStyles {
	return plainStyles{
		prompt: lipgloss.NewStyle().Bold(true).Foreground(p.Prompt),
		boot:   lipgloss.NewStyle().Foreground(p.BootText),
		echo:   lipgloss.NewStyle().Bold(true).Foreground(p.Echo),
		text:   lipgloss.NewStyle().Foreground(p.Text),
	}
}

// DisplayBootLine prints one line of the boot script behind the prompt glyph.
//
// Parameters:
//   - out: The writer for the output.
//   - p: The palette to colour the line with.
//   - line: The boot message.
func DisplayBootLine(out io.Writer, p ui.Palette, line string) {
	s := newPlainStyles(p)
	fmt.Fprintln(out, s.prompt.Render(promptGlyph)+s.boot.Render(line))
}

// DisplayCommandEcho prints the command echo line.
//
// Parameters:
//   - out: The writer for the output.
//   - p: The palette to colour the line with.
func DisplayCommandEcho(out io.Writer, p ui.Palette) {
	fmt.Fprintln(out, newPlainStyles(p).echo.Render(CommandEcho))
}
