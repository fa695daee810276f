// Package cli implements the plain, line-oriented mode: the boot script, a
// spinner while the request is in flight, and one typed-out fact, written to
// an ordinary output stream.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayBootLine], [DisplayCommandEcho].
//
//   - Run* functions drive a whole session and return a process exit code.
//     Examples: [RunPlain].
package cli
