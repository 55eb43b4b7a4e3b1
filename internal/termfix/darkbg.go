// ABOUTME: Fixes the lipgloss background mode before bubbletea's init() sends OSC queries
// ABOUTME: AFFIX_THEME=light selects a light background; anything else is dark

package termfix

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EnvTheme selects the background mode at process start.
const EnvTheme = "AFFIX_THEME"

var dark = true

func init() {
	// Setting the background explicitly makes lipgloss skip the OSC 10/11
	// query that bubbletea's init() would otherwise trigger.
	//
	// This package must NOT import bubbletea (directly or transitively)
	// so that Go's init order guarantees this runs first.
	dark = darkFor(os.Getenv(EnvTheme))
	lipgloss.SetHasDarkBackground(dark)
}

func darkFor(theme string) bool {
	return !strings.EqualFold(strings.TrimSpace(theme), "light")
}

// Dark reports the background mode chosen at init.
func Dark() bool { return dark }
