// ABOUTME: CLI entry point for affix: interactive playground, placement, sweep and snapshots
// ABOUTME: Parses flags, loads layered config, sets up logging, dispatches to the subcommand

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	// termfix must be imported before any package that imports bubbletea.
	// It fixes the lipgloss background in its init(), preventing bubbletea
	// from sending OSC 10/11 queries whose replies leak into the input.
	"github.com/mauromedda/affix-go/internal/termfix"

	"github.com/mauromedda/affix-go/internal/config"
	"github.com/mauromedda/affix-go/internal/log"
	"github.com/mauromedda/affix-go/internal/playground"
	"github.com/mauromedda/affix-go/internal/sweep"
	"github.com/mauromedda/affix-go/pkg/affix"
	"github.com/mauromedda/affix-go/pkg/affix/snapshot"
	"github.com/mauromedda/affix-go/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run performs the initialization sequence and dispatches to the subcommand.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	args, err := parseArgs(argv, stderr)
	if err != nil {
		return err
	}
	if args.version {
		fmt.Fprintf(stdout, "affix %s (%s) built %s\n", version, commit, date)
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	files := config.Files(cwd, args.config)
	settings, err := loadSettings(files, args)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(args, settings, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if args.explain {
		fmt.Fprint(stdout, config.Explain(settings))
		return nil
	}

	switch args.command {
	case cmdPlace:
		return runPlace(args, settings, stdout)
	case cmdSweep:
		return runSweep(ctx, args, settings, stdout)
	case cmdSnapshot:
		return runSnapshot(ctx, args, settings, stdout)
	default:
		return runPlay(ctx, args, settings, files, cwd)
	}
}

// loadSettings merges config files, environment and command-line overrides.
func loadSettings(files []string, args cliArgs) (*config.Settings, error) {
	if args.config != "" {
		if _, err := os.Stat(args.config); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	s, err := config.Load(files, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return config.Merge(s, args.overrides), nil
}

// setupLogging applies the log level and destination. The playground logs to
// a file or nowhere because bubbletea owns the terminal.
func setupLogging(args cliArgs, s *config.Settings, stderr io.Writer) (func(), error) {
	if s.LogLevel != "" {
		lvl, err := log.ParseLevel(s.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}
		log.SetLevel(lvl)
	}
	if args.verbose {
		log.SetLevel(log.LevelDebug)
	}

	path := args.logFile
	if path == "" {
		path = s.LogFile
	}
	if path == "" {
		if args.command == cmdPlay {
			log.SetOutput(io.Discard)
		} else {
			log.SetOutput(stderr)
		}
		return func() {}, nil
	}

	if err := config.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	prev := log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		f.Close()
	}, nil
}

func engineOptions(s *config.Settings) (affix.Options, error) {
	opts, err := s.Options()
	if err != nil {
		return affix.Options{}, fmt.Errorf("settings: %w", err)
	}
	return affix.NewOptions(opts...), nil
}

func runPlace(args cliArgs, s *config.Settings, stdout io.Writer) error {
	o, err := engineOptions(s)
	if err != nil {
		return err
	}
	sc := snapshot.Place(args.anchor, args.popup, args.viewport, o, "")
	pl := affix.Placement{Positioning: sc.Positioning}
	if b, ok := sc.Bridge(); ok {
		pl.Bridge = &b
	}
	data, err := pl.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding placement: %w", err)
	}
	_, err = fmt.Fprintf(stdout, "%s\n", data)
	return err
}

func runSweep(ctx context.Context, args cliArgs, s *config.Settings, stdout io.Writer) error {
	cfg := sweep.Config{Viewport: args.viewport, Step: args.step, Limit: args.limit}
	if opts, err := s.Options(); err != nil {
		return fmt.Errorf("settings: %w", err)
	} else if len(opts) > 0 {
		cfg.Options = []affix.Options{affix.NewOptions(opts...)}
	}
	rep, err := sweep.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, rep.String())
	if !rep.OK() {
		return fmt.Errorf("%d property violations", len(rep.Violations))
	}
	fmt.Fprintln(stdout)
	return nil
}

func runSnapshot(ctx context.Context, args cliArgs, s *config.Settings, stdout io.Writer) (err error) {
	o, err := engineOptions(s)
	if err != nil {
		return err
	}

	if args.format == "ansi" && args.follow {
		term := terminal.NewProcessTerminal(nil)
		if !term.IsTerminal() {
			return errors.New("--follow needs a terminal on stdout")
		}
		return followANSI(ctx, term, args, o)
	}

	w := stdout
	if args.out != "" {
		f, cerr := os.Create(args.out)
		if cerr != nil {
			return fmt.Errorf("creating output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	sc := snapshot.Place(args.anchor, args.popup, args.viewport, o, args.body)
	switch args.format {
	case "png":
		return snapshot.WritePNG(w, sc, args.scale)
	case "blocks":
		img, err := snapshot.Image(sc, args.scale)
		if err != nil {
			return err
		}
		for _, line := range snapshot.HalfBlock(img, img.Bounds().Dx()) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case "ansi":
		return writeANSI(w, args, o)
	default:
		return snapshot.WriteHTML(w, sc)
	}
}

func runPlay(ctx context.Context, args cliArgs, s *config.Settings, files []string, cwd string) error {
	docs, err := loadDocs(s, cwd)
	if err != nil {
		return err
	}
	reload := func() (*config.Settings, []config.Doc, error) {
		ns, err := loadSettings(files, args)
		if err != nil {
			return nil, nil, err
		}
		nd, err := loadDocs(ns, cwd)
		return ns, nd, err
	}

	watch := append([]string{}, files...)
	for _, d := range docs {
		watch = append(watch, filepath.Join(contentDir(s, cwd), d.Name+".md"))
	}

	return playground.Run(ctx, playground.Deps{
		Settings: s,
		Docs:     docs,
		Reload:   reload,
		Watch:    watch,
		Dark:     termfix.Dark(),
	})
}

func contentDir(s *config.Settings, cwd string) string {
	if s.Content != "" {
		return s.Content
	}
	return config.ContentDir(cwd)
}

func loadDocs(s *config.Settings, cwd string) ([]config.Doc, error) {
	docs, err := config.LoadDocs(contentDir(s, cwd))
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return docs, nil
}
