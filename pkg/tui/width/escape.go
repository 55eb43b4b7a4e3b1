// ABOUTME: Escape sequence scanning for styled terminal text
// ABOUTME: Recognises CSI, OSC and string-terminated sequences; tracks the active SGR state

package width

import "strings"

// escapeLen returns the length of the escape sequence at the start of s.
// s must begin with ESC.
func escapeLen(s string) int {
	if len(s) < 2 {
		return len(s)
	}
	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return len(s)
	case ']', 'P', '_', '^':
		// Terminated by ST; OSC also accepts BEL.
		for i := 2; i < len(s); i++ {
			if s[1] == ']' && s[i] == '\a' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return len(s)
	case '(', ')':
		return min(3, len(s))
	default:
		return 2
	}
}

// sgrState accumulates the SGR sequences in effect so styling can be
// re-applied after a line break or a splice.
type sgrState struct {
	seqs []string
}

// apply records seq. Resets clear the state; other non-SGR sequences are
// ignored.
func (s *sgrState) apply(seq string) {
	if !strings.HasPrefix(seq, "\x1b[") || !strings.HasSuffix(seq, "m") {
		return
	}
	if seq == sgrReset || seq == "\x1b[m" {
		s.seqs = s.seqs[:0]
		return
	}
	s.seqs = append(s.seqs, seq)
}

func (s *sgrState) reset() { s.seqs = s.seqs[:0] }

func (s *sgrState) String() string { return strings.Join(s.seqs, "") }
