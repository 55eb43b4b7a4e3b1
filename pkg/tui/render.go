// ABOUTME: Differential frame output: full repaint first, then only changed rows
// ABOUTME: Frames are screen-sized, so rows are addressed absolutely

package tui

import (
	"strconv"
	"strings"
)

// renderState tracks what the terminal currently shows.
type renderState struct {
	firstRender bool
}

// diffRender returns the escape sequences turning prev into curr. Rows are
// 1-based in CUP sequences.
func diffRender(state *renderState, prev, curr []string) string {
	var b strings.Builder
	var numBuf [20]byte

	if state.firstRender || len(prev) != len(curr) {
		b.WriteString("\x1b[?25l\x1b[2J\x1b[H")
		for i, line := range curr {
			if i > 0 {
				b.WriteString("\r\n")
			}
			b.WriteString(line)
		}
		state.firstRender = false
		return b.String()
	}

	for i := range curr {
		if prev[i] == curr[i] {
			continue
		}
		moveTo(&b, numBuf[:], i)
		b.WriteString("\x1b[2K")
		b.WriteString(curr[i])
	}
	return b.String()
}

// moveTo emits an absolute cursor move to the start of row.
func moveTo(b *strings.Builder, numBuf []byte, row int) {
	b.WriteString("\x1b[")
	b.Write(strconv.AppendInt(numBuf[:0], int64(row+1), 10))
	b.WriteString(";1H")
}
