// ABOUTME: Human-readable rendering of the effective configuration
// ABOUTME: Printed by "affix play --explain" and in verbose mode

package config

import (
	"fmt"
	"strings"
)

// Explain renders the effective settings, noting defaults for unset values.
func Explain(s *Settings) string {
	if s == nil {
		s = &Settings{}
	}

	var b strings.Builder

	b.WriteString("=== Placement ===\n")
	fmt.Fprintf(&b, "  DefaultEdge: %s\n", orDefault(s.DefaultEdge, "under"))
	if s.Edges != nil {
		fmt.Fprintf(&b, "  Edges:       %s\n", strings.Join(s.Edges, ", "))
	} else {
		b.WriteString("  Edges:       (all)\n")
	}
	fmt.Fprintf(&b, "  Align:       %s\n", orDefault(s.Align, "edge"))
	if s.Gap != nil {
		fmt.Fprintf(&b, "  Gap:         %g\n", *s.Gap)
	}
	fmt.Fprintf(&b, "  Overflow:    %s\n", orDefault(s.Overflow, "center"))
	b.WriteString("\n")

	b.WriteString("=== Appearance ===\n")
	if s.Bridge != nil && *s.Bridge {
		b.WriteString("  Bridge:      arrow\n")
		if s.BridgeSize != 0 {
			fmt.Fprintf(&b, "  BridgeSize:  %g\n", s.BridgeSize)
		}
	}
	if s.BridgeStyle != "" {
		fmt.Fprintf(&b, "  BridgeStyle: %s\n", s.BridgeStyle)
	}
	if s.BridgeOutlineStyle != "" {
		fmt.Fprintf(&b, "  Outline:     %s\n", s.BridgeOutlineStyle)
	}
	fmt.Fprintf(&b, "  Prefab:      %s\n", orDefault(s.Prefab, "none"))
	if s.Theme != "" {
		fmt.Fprintf(&b, "  Theme:       %s\n", s.Theme)
	}
	fmt.Fprintf(&b, "  Backdrop:    %t\n", s.BackdropEnabled())
	b.WriteString("\n")

	if s.Content != "" || s.LogFile != "" || s.LogLevel != "" {
		b.WriteString("=== Files ===\n")
		if s.Content != "" {
			fmt.Fprintf(&b, "  Content:     %s\n", s.Content)
		}
		if s.LogLevel != "" {
			fmt.Fprintf(&b, "  LogLevel:    %s\n", s.LogLevel)
		}
		if s.LogFile != "" {
			fmt.Fprintf(&b, "  LogFile:     %s\n", s.LogFile)
		}
	}

	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def + " (default)"
	}
	return v
}
