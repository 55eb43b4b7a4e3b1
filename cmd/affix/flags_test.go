// ABOUTME: Tests for subcommand and flag parsing
// ABOUTME: Checks per-command defaults, tri-state overrides and argument validation

package main

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

func TestParseArgs_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		argv []string
		want string
	}{
		{nil, cmdPlay},
		{[]string{"--verbose"}, cmdPlay},
		{[]string{"place"}, cmdPlace},
		{[]string{"sweep", "--step", "5"}, cmdSweep},
		{[]string{"snapshot", "--format", "png"}, cmdSnapshot},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.argv, " "), func(t *testing.T) {
			t.Parallel()
			args, err := parseArgs(tt.argv, io.Discard)
			if err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			if args.command != tt.want {
				t.Errorf("command = %q, want %q", args.command, tt.want)
			}
		})
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	t.Parallel()

	place, err := parseArgs([]string{"place"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if want := geom.R(100, 100, 50, 20); place.anchor != want {
		t.Errorf("anchor = %v, want %v", place.anchor, want)
	}
	if want := geom.V(800, 600); place.viewport != want {
		t.Errorf("viewport = %v, want %v", place.viewport, want)
	}

	sweep, err := parseArgs([]string{"sweep"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if sweep.step != 10 || sweep.viewport != geom.V(200, 120) {
		t.Errorf("sweep step = %g viewport = %v", sweep.step, sweep.viewport)
	}

	snap, err := parseArgs([]string{"snapshot"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if snap.format != "html" || snap.scale != 1 || snap.body != "popup" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestParseArgs_ANSICellDefaults(t *testing.T) {
	t.Parallel()

	args, err := parseArgs([]string{"snapshot", "--format", "ansi", "--popup", "20,3"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if want := geom.V(80, 24); args.viewport != want {
		t.Errorf("viewport = %v, want %v", args.viewport, want)
	}
	if want := geom.R(10, 5, 12, 1); args.anchor != want {
		t.Errorf("anchor = %v, want %v", args.anchor, want)
	}
	if want := geom.V(20, 3); args.popup != want {
		t.Errorf("popup = %v, want the explicit %v", args.popup, want)
	}
}

func TestParseArgs_TriStateOverrides(t *testing.T) {
	t.Parallel()

	args, err := parseArgs([]string{"place"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	o := args.overrides
	if o.Edges != nil || o.Gap != nil || o.Bridge != nil {
		t.Errorf("unset flags produced overrides: %+v", o)
	}

	args, err = parseArgs([]string{"place", "--edges", "over, left,", "--gap", "0", "--bridge=false", "--align", "center"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	o = args.overrides
	if len(o.Edges) != 2 || o.Edges[0] != "over" || o.Edges[1] != "left" {
		t.Errorf("edges = %q, want [over left]", o.Edges)
	}
	if o.Gap == nil || *o.Gap != 0 {
		t.Errorf("gap = %v, want explicit 0", o.Gap)
	}
	if o.Bridge == nil || *o.Bridge {
		t.Errorf("bridge = %v, want explicit false", o.Bridge)
	}
	if o.Align != "center" {
		t.Errorf("align = %q, want center", o.Align)
	}

	args, err = parseArgs([]string{"place", "--edges", ""}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if args.overrides.Edges == nil || len(args.overrides.Edges) != 0 {
		t.Errorf("empty --edges = %v, want empty non-nil", args.overrides.Edges)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"bad rect", []string{"place", "--anchor", "1,2,3"}, "--anchor"},
		{"bad number", []string{"place", "--popup", "1,x"}, "--popup"},
		{"bad format", []string{"snapshot", "--format", "gif"}, "unknown format"},
		{"follow without ansi", []string{"snapshot", "--follow"}, "--follow requires"},
		{"extra args", []string{"place", "extra"}, "unexpected arguments"},
		{"command flag elsewhere", []string{"sweep", "--anchor", "1,2,3,4"}, "not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseArgs(tt.argv, io.Discard)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestParseArgs_UnknownCommand(t *testing.T) {
	t.Parallel()

	_, err := parseArgs([]string{"draw"}, io.Discard)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("err = %v, want ErrUnknownCommand", err)
	}
}

func TestParseArgs_Help(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	_, err := parseArgs([]string{"place", "-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(out.String(), "-anchor") {
		t.Errorf("usage does not list -anchor:\n%s", out.String())
	}
}
