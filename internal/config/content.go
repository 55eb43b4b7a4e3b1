// ABOUTME: Popup content documents: Markdown with YAML frontmatter per anchor
// ABOUTME: Frontmatter carries the anchor label and per-popup placement overrides

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ErrUnterminatedFrontmatter is returned when the closing --- is missing.
var ErrUnterminatedFrontmatter = errors.New("unterminated frontmatter: missing closing ---")

// Doc is one popup content document.
type Doc struct {
	Name string `yaml:"-"`
	// Anchor is the label of the anchor the popup attaches to.
	Anchor string `yaml:"anchor"`
	Title  string `yaml:"title"`
	// Placement overrides, applied over the merged Settings.
	Edges  []string `yaml:"edges,omitempty"`
	Align  string   `yaml:"align,omitempty"`
	Prefab string   `yaml:"prefab,omitempty"`
	Bridge *bool    `yaml:"bridge,omitempty"`
	Width  int      `yaml:"width,omitempty"`

	Body string `yaml:"-"`
}

// Overlay returns base with the document's placement overrides applied.
func (d Doc) Overlay(base *Settings) *Settings {
	return Merge(base, &Settings{
		Edges:  d.Edges,
		Align:  d.Align,
		Prefab: d.Prefab,
		Bridge: d.Bridge,
	})
}

// ParseFrontmatter extracts YAML frontmatter from Markdown content.
// It returns the parsed frontmatter as T and the remaining body.
// Without frontmatter it returns (zero T, original content, nil).
func ParseFrontmatter[T any](content string) (T, string, error) {
	var zero T

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontmatterDelimiter+"\n") {
		return zero, content, nil
	}
	rest := normalized[len(frontmatterDelimiter)+1:]

	var yamlContent, afterClosing string
	if strings.HasPrefix(rest, frontmatterDelimiter+"\n") || rest == frontmatterDelimiter {
		afterClosing = rest[len(frontmatterDelimiter):]
	} else {
		before, after, ok := strings.Cut(rest, "\n"+frontmatterDelimiter)
		if !ok {
			return zero, "", ErrUnterminatedFrontmatter
		}
		yamlContent, afterClosing = before, after
	}

	var result T
	if err := yaml.Unmarshal([]byte(yamlContent), &result); err != nil {
		return zero, "", fmt.Errorf("parse frontmatter YAML: %w", err)
	}
	return result, strings.TrimPrefix(afterClosing, "\n"), nil
}

// ParseDoc parses one document. The name defaults the anchor label.
func ParseDoc(name, content string) (Doc, error) {
	d, body, err := ParseFrontmatter[Doc](content)
	if err != nil {
		return Doc{}, fmt.Errorf("%s: %w", name, err)
	}
	d.Name = name
	d.Body = body
	if d.Anchor == "" {
		d.Anchor = name
	}
	if d.Title == "" {
		d.Title = d.Anchor
	}
	return d, nil
}

// LoadDocs reads every *.md file in dir, sorted by file name. A missing
// directory yields no documents.
func LoadDocs(dir string) ([]Doc, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading content dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]Doc, 0, len(names))
	for _, n := range names {
		data, err := os.ReadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", n, err)
		}
		d, err := ParseDoc(strings.TrimSuffix(n, filepath.Ext(n)), string(data))
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}
