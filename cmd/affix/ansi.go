// ABOUTME: Cell-based snapshot: one anchor and one popup composited on the tui surface
// ABOUTME: Without --follow a single frame is printed; with it the frame tracks terminal resizes

package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mauromedda/affix-go/internal/termfix"
	"github.com/mauromedda/affix-go/pkg/affix"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
	"github.com/mauromedda/affix-go/pkg/affix/tuihost"
	"github.com/mauromedda/affix-go/pkg/tui"
	"github.com/mauromedda/affix-go/pkg/tui/terminal"
)

// cellScene lays out the anchor as a solid block pane and mounts a popup
// against it.
func cellScene(w tui.Writer, cols, rows int, args cliArgs, o affix.Options) (*tui.TUI, *affix.Controller, error) {
	ui := tui.New(w, cols, rows)

	a := geom.R(math.Round(args.anchor.Left), math.Round(args.anchor.Top),
		math.Round(args.anchor.Width), math.Round(args.anchor.Height))
	block := strings.Repeat("█", max(int(a.Width), 1))
	lines := make([]string, max(int(a.Height), 1))
	for i := range lines {
		lines[i] = block
	}
	anchor := ui.AddPane("anchor", nil, a, tui.NewText(strings.Join(lines, "\n")))

	popup := tuihost.NewPopup("snapshot", args.body)
	popup.MaxWidth = int(args.popup.X)

	opts := []affix.Option{affix.WithOptions(o)}
	if o.BridgeSize == affix.DefaultBridgeSize {
		// Pixel-sized default; one cell reads as an arrow.
		opts = append(opts, affix.WithBridgeSize(1))
	}
	host := tuihost.New(ui, tuihost.DefaultStyles(termfix.Dark()))
	c := affix.NewController(host, opts...)
	if err := c.Mount(anchor.Region(), popup); err != nil {
		return nil, nil, fmt.Errorf("mounting popup: %w", err)
	}
	return ui, c, nil
}

// writeANSI prints one frame at the --viewport size.
func writeANSI(w io.Writer, args cliArgs, o affix.Options) error {
	ui, c, err := cellScene(nil, int(args.viewport.X), int(args.viewport.Y), args, o)
	if err != nil {
		return err
	}
	defer c.Unmount()
	_, err = fmt.Fprintln(w, strings.Join(ui.Frame(), "\n"))
	return err
}

type termSize struct{ w, h int }

// followANSI draws the scene on term and redraws whenever it is resized,
// until ctx is done.
func followANSI(ctx context.Context, term terminal.Terminal, args cliArgs, o affix.Options) error {
	cols, rows, err := term.Size()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	ui, c, err := cellScene(term, cols, rows, args, o)
	if err != nil {
		return err
	}
	defer c.Unmount()
	defer term.Write([]byte("\x1b[?25h"))

	sizes := make(chan termSize, 1)
	cancel := term.OnResize(func(w, h int) {
		// Latest size wins.
		select {
		case <-sizes:
		default:
		}
		select {
		case sizes <- termSize{w, h}:
		default:
		}
	})
	defer cancel()

	if err := ui.RenderOnce(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-sizes:
			ui.SetSize(s.w, s.h)
			if err := ui.RenderOnce(); err != nil {
				return err
			}
		}
	}
}
