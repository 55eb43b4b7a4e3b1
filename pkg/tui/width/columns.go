// ABOUTME: Column ranges and wrapping of styled lines
// ABOUTME: Escape sequences are kept so the slice or wrapped line renders with its styling

package width

import "strings"

// SliceByColumn returns the clusters of s covering cells [start, end). All
// escape sequences are kept.
func SliceByColumn(s string, start, end int) string {
	if start >= end || s == "" {
		return ""
	}
	var b strings.Builder
	for _, tk := range tokenize(s) {
		if tk.esc || (tk.col+tk.width > start && tk.col < end) {
			b.WriteString(tk.text)
		}
	}
	return b.String()
}

// Wrap breaks s into lines of at most maxWidth cells, splitting at cluster
// boundaries. Newlines in s start a new line. Styling active at a break is
// repeated at the start of the next line.
func Wrap(s string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}
	var (
		lines []string
		cur   strings.Builder
		used  int
		sgr   sgrState
	)
	breakLine := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		cur.WriteString(sgr.String())
		used = 0
	}
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			breakLine()
		}
		for _, tk := range tokenize(part) {
			if tk.esc {
				sgr.apply(tk.text)
				cur.WriteString(tk.text)
				continue
			}
			if used > 0 && used+tk.width > maxWidth {
				breakLine()
			}
			cur.WriteString(tk.text)
			used += tk.width
		}
	}
	return append(lines, cur.String())
}
