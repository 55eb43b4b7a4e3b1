// ABOUTME: Block measurement of multi-line styled text in terminal cells
// ABOUTME: Content is NFC-normalised first so combining sequences measure consistently

package width

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in Unicode NFC form.
func Normalize(s string) string {
	if isPlainASCII(s) {
		return s
	}
	return norm.NFC.String(s)
}

// Lines splits a block into normalised lines. A trailing newline does not
// produce an extra empty line.
func Lines(block string) []string {
	block = strings.TrimSuffix(block, "\n")
	if block == "" {
		return nil
	}
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = Normalize(strings.TrimSuffix(l, "\r"))
	}
	return lines
}

// Measure returns the width of the widest line and the number of lines.
func Measure(lines []string) (cols, rows int) {
	for _, l := range lines {
		if w := VisibleWidth(l); w > cols {
			cols = w
		}
	}
	return cols, len(lines)
}
