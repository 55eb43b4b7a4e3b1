// ABOUTME: Column-exact splicing of one styled line over another
// ABOUTME: Wide clusters cut by the splice edges become spaces; SGR state is restored after the insert

package width

import "strings"

const sgrReset = "\x1b[0m"

// Splice writes top over base starting at visible column col and returns the
// combined line. base is padded with spaces when shorter than col. A negative
// col clips the left part of top. The styling active in base at the end of
// the insert is re-applied to the remaining suffix.
func Splice(base, top string, col int) string {
	if top == "" {
		return base
	}
	if col < 0 {
		top = SliceByColumn(top, -col, VisibleWidth(top))
		col = 0
		if top == "" {
			return base
		}
	}
	topW := VisibleWidth(top)
	end := col + topW

	var b strings.Builder
	b.Grow(len(base) + len(top) + 16)

	var sgr sgrState
	segs := tokenize(base)
	baseW := 0
	styled := false
	for _, seg := range segs {
		if seg.esc {
			sgr.apply(seg.text)
			if seg.col < col {
				b.WriteString(seg.text)
				styled = true
			}
			continue
		}
		baseW = seg.col + seg.width
		switch {
		case seg.col+seg.width <= col:
			b.WriteString(seg.text)
		case seg.col < col:
			b.WriteString(strings.Repeat(" ", col-seg.col))
		}
	}
	if baseW < col {
		b.WriteString(strings.Repeat(" ", col-baseW))
	}
	if styled {
		b.WriteString(sgrReset)
	}

	b.WriteString(top)
	if strings.Contains(top, "\x1b") {
		b.WriteString(sgrReset)
	}

	if baseW <= end {
		return b.String()
	}

	// Suffix: replay SGR state as of the first column after the insert.
	sgr.reset()
	wroteState := false
	for _, seg := range segs {
		if seg.esc {
			if seg.col <= end {
				sgr.apply(seg.text)
			} else {
				b.WriteString(seg.text)
			}
			continue
		}
		if seg.col+seg.width <= end {
			continue
		}
		if !wroteState {
			b.WriteString(sgr.String())
			wroteState = true
		}
		if seg.col < end {
			b.WriteString(strings.Repeat(" ", seg.col+seg.width-end))
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

// PadRight pads s with spaces to exactly w visible columns, truncating when
// longer.
func PadRight(s string, w int) string {
	vw := VisibleWidth(s)
	switch {
	case vw == w:
		return s
	case vw < w:
		return s + strings.Repeat(" ", w-vw)
	default:
		return SliceByColumn(s, 0, w)
	}
}
