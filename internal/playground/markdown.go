// ABOUTME: Markdown renderer wrapper around glamour for popup bodies
// ABOUTME: Caches rendered results keyed by content hash, width and style

package playground

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer wraps glamour to render markdown with caching.
type MarkdownRenderer struct {
	style string
	cache map[string]string // "hash:width" -> rendered
}

// NewMarkdownRenderer creates a renderer for a dark or light background.
func NewMarkdownRenderer(dark bool) *MarkdownRenderer {
	style := "dark"
	if !dark {
		style = "light"
	}
	return &MarkdownRenderer{style: style, cache: make(map[string]string)}
}

// Render returns the terminal-styled rendering of md wrapped at width.
// On a glamour failure the raw markdown is returned.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}

	key := cacheKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}

	// glamour pads with blank lines and trailing spaces
	rendered = strings.Trim(rendered, "\n")
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	rendered = strings.Join(lines, "\n")

	r.cache[key] = rendered
	return rendered
}

func cacheKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}
