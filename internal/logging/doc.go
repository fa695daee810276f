// Package logging provides the structured logging interface used across the
// terminal. The TUI owns stdout, so loggers are usually pointed at a file or
// discarded entirely.
package logging
