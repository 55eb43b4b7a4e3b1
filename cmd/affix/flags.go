// ABOUTME: CLI flag parsing using stdlib flag package, one flag set per subcommand
// ABOUTME: Placement flags become a Settings layer on top of files and environment

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mauromedda/affix-go/internal/config"
	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

// Subcommands.
const (
	cmdPlay     = "play"
	cmdPlace    = "place"
	cmdSweep    = "sweep"
	cmdSnapshot = "snapshot"
)

// ErrUnknownCommand is returned for an unrecognised subcommand.
var ErrUnknownCommand = errors.New("unknown command")

type cliArgs struct {
	command string
	config  string
	verbose bool
	version bool
	explain bool
	logFile string

	// overrides holds only the placement flags given on the command line.
	overrides *config.Settings

	anchor   geom.Rect
	popup    geom.Vec2
	viewport geom.Vec2
	body     string

	format string
	out    string
	scale  float64
	follow bool

	step  float64
	limit int
}

func parseArgs(argv []string, stderr io.Writer) (cliArgs, error) {
	args := cliArgs{command: cmdPlay}
	if len(argv) > 0 && !strings.HasPrefix(argv[0], "-") {
		args.command, argv = argv[0], argv[1:]
	}
	switch args.command {
	case cmdPlay, cmdPlace, cmdSweep, cmdSnapshot:
	default:
		return args, fmt.Errorf("%w %q (want play, place, sweep or snapshot)", ErrUnknownCommand, args.command)
	}

	fs := flag.NewFlagSet("affix "+args.command, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&args.config, "config", "", "Config file used instead of the project config")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.BoolVar(&args.explain, "explain", false, "Print the effective settings and exit")
	fs.StringVar(&args.logFile, "log-file", "", "Write logs to this file")

	var (
		defaultEdge, edges, align, prefab, overflow, theme string
		gap, bridgeSize                                    float64
		bridge                                             bool
	)
	fs.StringVar(&defaultEdge, "default-edge", "", "Edge used before the first measurement")
	fs.StringVar(&edges, "edges", "", "Comma-separated candidate edges (over, under, left, right)")
	fs.StringVar(&align, "align", "", "Alignment: edge or center")
	fs.Float64Var(&gap, "gap", 0, "Distance between anchor and popup")
	fs.BoolVar(&bridge, "bridge", false, "Draw the arrow connector")
	fs.Float64Var(&bridgeSize, "bridge-size", 0, "Arrow elevation")
	fs.StringVar(&prefab, "prefab", "", "Cosmetic preset: none, float or callout")
	fs.StringVar(&overflow, "overflow", "", "Oversized popups: center or start")
	fs.StringVar(&theme, "theme", "", "Background: dark or light")

	var anchor, popup, viewport string
	switch args.command {
	case cmdPlace, cmdSnapshot:
		fs.StringVar(&anchor, "anchor", "100,100,50,20", "Anchor rect as left,top,width,height")
		fs.StringVar(&popup, "popup", "200,100", "Popup size as width,height")
		fs.StringVar(&viewport, "viewport", "800,600", "Viewport size as width,height")
	case cmdSweep:
		fs.StringVar(&viewport, "viewport", "200,120", "Viewport size as width,height")
		fs.Float64Var(&args.step, "step", 10, "Grid spacing")
		fs.IntVar(&args.limit, "limit", 0, "Concurrent rows (0 = GOMAXPROCS)")
	}
	if args.command == cmdSnapshot {
		fs.StringVar(&args.format, "format", "html", "Output format: html, png, blocks or ansi")
		fs.StringVar(&args.out, "out", "", "Output file (default stdout)")
		fs.Float64Var(&args.scale, "scale", 1, "Raster scale for png and blocks")
		fs.BoolVar(&args.follow, "follow", false, "With ansi: redraw on terminal resize until interrupted")
		fs.StringVar(&args.body, "body", "popup", "Popup text")
	}

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if fs.NArg() > 0 {
		return args, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	o := &config.Settings{
		DefaultEdge: defaultEdge,
		Align:       align,
		BridgeSize:  bridgeSize,
		Prefab:      prefab,
		Overflow:    overflow,
		Theme:       theme,
	}
	if set["edges"] {
		o.Edges = splitList(edges)
	}
	if set["gap"] {
		o.Gap = &gap
	}
	if set["bridge"] {
		o.Bridge = &bridge
	}
	args.overrides = o

	if args.command == cmdSnapshot && args.format == "ansi" {
		// Cell geometry instead of pixel defaults.
		if !set["anchor"] {
			anchor = "10,5,12,1"
		}
		if !set["popup"] {
			popup = "30,5"
		}
		if !set["viewport"] {
			viewport = "80,24"
		}
	}

	var err error
	if anchor != "" {
		if args.anchor, err = parseRect(anchor); err != nil {
			return args, fmt.Errorf("--anchor: %w", err)
		}
	}
	if popup != "" {
		if args.popup, err = parseVec(popup); err != nil {
			return args, fmt.Errorf("--popup: %w", err)
		}
	}
	if viewport != "" {
		if args.viewport, err = parseVec(viewport); err != nil {
			return args, fmt.Errorf("--viewport: %w", err)
		}
	}
	if args.command == cmdSnapshot {
		switch args.format {
		case "html", "png", "blocks", "ansi":
		default:
			return args, fmt.Errorf("--format: unknown format %q", args.format)
		}
		if args.follow && args.format != "ansi" {
			return args, errors.New("--follow requires --format ansi")
		}
	}
	return args, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseVec(s string) (geom.Vec2, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return geom.Vec2{}, err
	}
	return geom.V(v[0], v[1]), nil
}

func parseRect(s string) (geom.Rect, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return geom.Rect{}, err
	}
	return geom.R(v[0], v[1], v[2], v[3]), nil
}
