// ABOUTME: Defines the Terminal interface for size queries, output and resize notifications
// ABOUTME: Implementations target the real process TTY or an in-memory virtual terminal

package terminal

// Terminal abstracts the output side of a terminal.
type Terminal interface {
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)
	// IsTerminal reports whether output goes to an interactive TTY.
	IsTerminal() bool
	// OnResize registers fn for size changes. The callback may run on
	// another goroutine. The returned function unregisters it.
	OnResize(fn func(width, height int)) (cancel func())
}
