// Package ui provides the terminal colour palettes shared by the TUI and the
// plain CLI renderer.
//
// A palette is a closed mapping from semantic role (background, text, prompt,
// cursor, ...) to a lipgloss colour. Two palettes exist, dark and light, plus
// a colourless one honoured when NO_COLOR is set.
package ui
