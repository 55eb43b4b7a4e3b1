// ABOUTME: Entry point for the playground: creates the tea.Program and blocks until exit
// ABOUTME: A config watcher goroutine feeds ReloadMsg into the program

package playground

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/affix-go/internal/config"
)

// RunOption customises the program, mainly for tests.
type RunOption func(*runConfig)

type runConfig struct {
	in  io.Reader
	out io.Writer
}

// WithIO replaces the program's terminal input and output.
func WithIO(in io.Reader, out io.Writer) RunOption {
	return func(c *runConfig) { c.in, c.out = in, out }
}

// Run starts the playground. Blocks until the user exits or ctx is cancelled.
func Run(ctx context.Context, deps Deps, opts ...RunOption) error {
	var rc runConfig
	for _, o := range opts {
		o(&rc)
	}

	m := NewModel(deps)
	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if rc.in != nil {
		progOpts = append(progOpts, tea.WithInput(rc.in))
	}
	if rc.out != nil {
		progOpts = append(progOpts, tea.WithOutput(rc.out))
	}
	p := tea.NewProgram(m, progOpts...)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if deps.Reload != nil && len(deps.Watch) > 0 {
		w := config.NewWatcher(deps.Watch, func(changed []string) {
			p.Send(ReloadMsg{Paths: changed})
		})
		go w.Run(watchCtx)
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
