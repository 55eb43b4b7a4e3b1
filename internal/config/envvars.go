// ABOUTME: Environment layer: AFFIX_* overrides and ${VAR} expansion in path fields
// ABOUTME: getenv is injected so tests never touch the process environment

package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnv.
const (
	EnvEdges  = "AFFIX_EDGES"
	EnvAlign  = "AFFIX_ALIGN"
	EnvGap    = "AFFIX_GAP"
	EnvBridge = "AFFIX_BRIDGE"
	EnvPrefab = "AFFIX_PREFAB"
)

// ApplyEnv overlays AFFIX_* variables onto s. Unset or empty variables are
// ignored; malformed numbers and booleans are errors.
func ApplyEnv(s *Settings, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvEdges)); v != "" {
		var edges []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				edges = append(edges, part)
			}
		}
		s.Edges = edges
	}
	if v := strings.TrimSpace(getenv(EnvAlign)); v != "" {
		s.Align = v
	}
	if v := strings.TrimSpace(getenv(EnvGap)); v != "" {
		g, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGap, err)
		}
		s.Gap = &g
	}
	if v := strings.TrimSpace(getenv(EnvBridge)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBridge, err)
		}
		s.Bridge = &b
	}
	if v := strings.TrimSpace(getenv(EnvPrefab)); v != "" {
		s.Prefab = v
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in the path-like fields of Settings.
func ResolveEnvVars(s *Settings, getenv func(string) string) {
	s.Content = expandEnv(s.Content, getenv)
	s.LogFile = expandEnv(s.LogFile, getenv)
}

// expandEnv replaces ${VAR} with getenv(VAR). Unset vars become "".
func expandEnv(s string, getenv func(string) string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}
