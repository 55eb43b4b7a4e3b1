// ABOUTME: Layered YAML settings: global < project < environment < flags
// ABOUTME: Converts the merged result into engine options

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/affix-go/pkg/affix"
)

// Settings holds the merged configuration. Pointer fields distinguish an
// explicit zero from "not set" so a higher layer can turn a feature off.
type Settings struct {
	DefaultEdge        string   `yaml:"default_edge,omitempty"`
	Edges              []string `yaml:"edges,omitempty"`
	Align              string   `yaml:"align,omitempty"`
	Gap                *float64 `yaml:"gap,omitempty"`
	Bridge             *bool    `yaml:"bridge,omitempty"`
	BridgeSize         float64  `yaml:"bridge_size,omitempty"`
	BridgeStyle        string   `yaml:"bridge_style,omitempty"`
	BridgeOutlineStyle string   `yaml:"bridge_outline_style,omitempty"`
	Prefab             string   `yaml:"prefab,omitempty"`
	Overflow           string   `yaml:"overflow,omitempty"`
	Backdrop           *bool    `yaml:"close_on_click_outside,omitempty"`

	Theme    string `yaml:"theme,omitempty"`
	Content  string `yaml:"content,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`
}

// Load reads and merges the given files in order, then applies environment
// overrides read through getenv. Missing files are skipped.
func Load(files []string, getenv func(string) string) (*Settings, error) {
	merged := &Settings{}
	for _, path := range files {
		s, err := loadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		merged = Merge(merged, s)
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := ApplyEnv(merged, getenv); err != nil {
		return nil, err
	}
	ResolveEnvVars(merged, getenv)
	return merged, nil
}

// loadFile reads Settings from a YAML file. Unknown keys are rejected so a
// typo does not silently fall back to a default.
func loadFile(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return &Settings{}, err
	}
	defer f.Close()

	var s Settings
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Merge overlays upper onto lower. Non-zero upper values win.
func Merge(lower, upper *Settings) *Settings {
	if lower == nil {
		lower = &Settings{}
	}
	if upper == nil {
		return lower
	}
	result := *lower

	setString(&result.DefaultEdge, upper.DefaultEdge)
	setString(&result.Align, upper.Align)
	setString(&result.BridgeStyle, upper.BridgeStyle)
	setString(&result.BridgeOutlineStyle, upper.BridgeOutlineStyle)
	setString(&result.Prefab, upper.Prefab)
	setString(&result.Overflow, upper.Overflow)
	setString(&result.Theme, upper.Theme)
	setString(&result.Content, upper.Content)
	setString(&result.LogLevel, upper.LogLevel)
	setString(&result.LogFile, upper.LogFile)

	if upper.Edges != nil {
		result.Edges = append([]string(nil), upper.Edges...)
	}
	if upper.Gap != nil {
		g := *upper.Gap
		result.Gap = &g
	}
	if upper.Bridge != nil {
		b := *upper.Bridge
		result.Bridge = &b
	}
	if upper.Backdrop != nil {
		b := *upper.Backdrop
		result.Backdrop = &b
	}
	if upper.BridgeSize != 0 {
		result.BridgeSize = upper.BridgeSize
	}
	return &result
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Options converts the settings into engine options. It fails on the first
// value the engine does not understand.
func (s *Settings) Options() ([]affix.Option, error) {
	if s == nil {
		return nil, nil
	}
	var opts []affix.Option

	if s.DefaultEdge != "" {
		e, err := affix.ParseEdge(s.DefaultEdge)
		if err != nil {
			return nil, fmt.Errorf("default_edge: %w", err)
		}
		opts = append(opts, affix.WithDefaultEdge(e))
	}
	if s.Edges != nil {
		edges := make([]affix.Edge, 0, len(s.Edges))
		for _, name := range s.Edges {
			e, err := affix.ParseEdge(name)
			if err != nil {
				return nil, fmt.Errorf("edges: %w", err)
			}
			edges = append(edges, e)
		}
		opts = append(opts, affix.WithEdges(edges...))
	}
	if s.Align != "" {
		if err := oneOf("align", s.Align, "edge", "center"); err != nil {
			return nil, err
		}
		opts = append(opts, affix.WithAlign(affix.ParseAlignment(s.Align)))
	}
	if s.Overflow != "" {
		if err := oneOf("overflow", s.Overflow, "center", "start"); err != nil {
			return nil, err
		}
		opts = append(opts, affix.WithOverflow(affix.ParseOverflow(s.Overflow)))
	}
	if s.Gap != nil {
		if *s.Gap < 0 {
			return nil, fmt.Errorf("gap: must not be negative, got %g", *s.Gap)
		}
		opts = append(opts, affix.WithGap(*s.Gap))
	}
	if s.Bridge != nil {
		kind := affix.BridgeNone
		if *s.Bridge {
			kind = affix.BridgeArrow
		}
		opts = append(opts, affix.WithBridge(kind))
	}
	if s.BridgeSize != 0 {
		opts = append(opts, affix.WithBridgeSize(s.BridgeSize))
	}
	if s.BridgeStyle != "" || s.BridgeOutlineStyle != "" {
		opts = append(opts, affix.WithBridgeStyle(s.BridgeStyle, s.BridgeOutlineStyle))
	}
	if s.Prefab != "" {
		if err := oneOf("prefab", s.Prefab, "none", "float", "callout"); err != nil {
			return nil, err
		}
		p := affix.Prefab(strings.ToLower(strings.TrimSpace(s.Prefab)))
		if p == "none" {
			p = affix.PrefabNone
		}
		opts = append(opts, affix.WithPrefab(p))
	}
	return opts, nil
}

// ErrInvalidValue reports a setting outside its allowed set.
var ErrInvalidValue = errors.New("invalid value")

func oneOf(key, v string, allowed ...string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%s: %w %q (want one of %s)", key, ErrInvalidValue, v, strings.Join(allowed, ", "))
}

// BackdropEnabled reports whether popups should close on outside clicks.
// It defaults to true.
func (s *Settings) BackdropEnabled() bool {
	return s == nil || s.Backdrop == nil || *s.Backdrop
}
