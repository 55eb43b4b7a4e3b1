// ABOUTME: Tests for popup content documents and the frontmatter parser
// ABOUTME: Covers CRLF, missing and unterminated frontmatter, and directory loading

package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestParseFrontmatter(t *testing.T) {
	t.Parallel()

	type fm struct {
		Anchor string `yaml:"anchor"`
	}
	tests := []struct {
		name       string
		input      string
		wantAnchor string
		wantBody   string
	}{
		{"standard", "---\nanchor: save\n---\nbody", "save", "body"},
		{"crlf", "---\r\nanchor: open\r\n---\r\nhello", "open", "hello"},
		{"none", "# Just markdown", "", "# Just markdown"},
		{"empty", "---\n---\nrest", "", "rest"},
		{"colon in value", "---\nanchor: \"a: b\"\n---\n", "a: b", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, body, err := ParseFrontmatter[fm](tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Anchor != tt.wantAnchor {
				t.Errorf("Anchor = %q, want %q", got.Anchor, tt.wantAnchor)
			}
			if body != tt.wantBody {
				t.Errorf("Body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParseFrontmatter_Unterminated(t *testing.T) {
	t.Parallel()

	_, _, err := ParseFrontmatter[map[string]any]("---\nanchor: x\nno close")
	if !errors.Is(err, ErrUnterminatedFrontmatter) {
		t.Errorf("err = %v, want ErrUnterminatedFrontmatter", err)
	}
}

func TestParseDoc_Defaults(t *testing.T) {
	t.Parallel()

	d, err := ParseDoc("help", "Plain body")
	if err != nil {
		t.Fatal(err)
	}
	if d.Anchor != "help" || d.Title != "help" || d.Body != "Plain body" {
		t.Errorf("doc = %+v", d)
	}
}

func TestDocOverlay(t *testing.T) {
	t.Parallel()

	d, err := ParseDoc("menu", "---\nanchor: File\nedges: [under]\nprefab: callout\n---\nitems")
	if err != nil {
		t.Fatal(err)
	}
	base := &Settings{Edges: []string{"over"}, Align: "center", Prefab: "float"}
	got := d.Overlay(base)
	if len(got.Edges) != 1 || got.Edges[0] != "under" {
		t.Errorf("Edges = %v, want [under]", got.Edges)
	}
	if got.Align != "center" || got.Prefab != "callout" {
		t.Errorf("Align/Prefab = %q/%q, want center/callout", got.Align, got.Prefab)
	}
	if base.Prefab != "float" {
		t.Error("Overlay must not modify base")
	}
}

func TestLoadDocs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.md"), "---\nanchor: Beta\n---\nsecond")
	writeFile(t, filepath.Join(dir, "a.md"), "first")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	docs, err := LoadDocs(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	if docs[0].Anchor != "a" || docs[1].Anchor != "Beta" {
		t.Errorf("anchors = %q, %q", docs[0].Anchor, docs[1].Anchor)
	}
}

func TestLoadDocs_MissingDir(t *testing.T) {
	t.Parallel()

	docs, err := LoadDocs(filepath.Join(t.TempDir(), "nope"))
	if err != nil || docs != nil {
		t.Errorf("LoadDocs(missing) = %v, %v; want nil, nil", docs, err)
	}
}
