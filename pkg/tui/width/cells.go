// ABOUTME: Display width of styled strings in terminal cells, grapheme-aware
// ABOUTME: Plain ASCII is measured directly; other strings go through a two-generation cache

package width

import (
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// cacheGeneration bounds each generation of the width cache.
const cacheGeneration = 256

// widthCache keeps recent measurements. When the current generation fills up
// it becomes the previous one and the oldest generation is dropped.
type widthCache struct {
	mu   sync.Mutex
	cur  map[string]int
	prev map[string]int
	max  int
}

func newWidthCache(max int) *widthCache {
	return &widthCache{cur: make(map[string]int, max), max: max}
}

func (c *widthCache) get(s string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.cur[s]; ok {
		return w, true
	}
	w, ok := c.prev[s]
	if ok {
		c.store(s, w)
	}
	return w, ok
}

func (c *widthCache) put(s string, w int) {
	c.mu.Lock()
	c.store(s, w)
	c.mu.Unlock()
}

func (c *widthCache) store(s string, w int) {
	if len(c.cur) >= c.max {
		c.prev, c.cur = c.cur, make(map[string]int, c.max)
	}
	c.cur[s] = w
}

var cache = newWidthCache(cacheGeneration)

// VisibleWidth returns the number of cells s occupies. Escape sequences take
// no space; wide clusters such as CJK and emoji take two.
func VisibleWidth(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := cache.get(s); ok {
		return w
	}
	w := 0
	for _, tk := range tokenize(s) {
		w += tk.width
	}
	cache.put(s, w)
	return w
}

// isPlainASCII reports whether s is only printable ASCII.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

func clusterWidth(cluster string) int {
	r, _ := utf8.DecodeRuneInString(cluster)
	if r == utf8.RuneError {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// token is one escape sequence or one grapheme cluster of a line. col is the
// cell the token starts at.
type token struct {
	text  string
	col   int
	width int
	esc   bool
}

// tokenize splits s into escape sequences and visible clusters.
func tokenize(s string) []token {
	var out []token
	col, state := 0, -1
	for len(s) > 0 {
		if s[0] == '\x1b' {
			n := escapeLen(s)
			out = append(out, token{text: s[:n], col: col, esc: true})
			s = s[n:]
			state = -1
			continue
		}
		cluster, rest, _, next := uniseg.FirstGraphemeClusterInString(s, state)
		w := clusterWidth(cluster)
		out = append(out, token{text: cluster, col: col, width: w})
		col += w
		s, state = rest, next
	}
	return out
}
