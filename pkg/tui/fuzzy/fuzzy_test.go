// ABOUTME: Tests for label ranking
// ABOUTME: Uses anchor-like labels with a leading marker glyph

package fuzzy

import "testing"

type labels []string

func (l labels) String(i int) string { return l[i] }
func (l labels) Len() int            { return len(l) }

var anchors = labels{"● Welcome", "● Edge fallback", "● Centered", "● Narrow column", "cursor"}

func TestBest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    int
		ok      bool
	}{
		{"narr", 3, true},
		{"cent", 2, true},
		{"cursor", 4, true},
		{"", 0, false},
		{"zzz", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()
			m, ok := Best(tt.pattern, anchors)
			if ok != tt.ok || (ok && m.Index != tt.want) {
				t.Errorf("Best(%q) = %+v %v, want index %d %v", tt.pattern, m, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRank_Positions(t *testing.T) {
	t.Parallel()

	got := Rank("wel", anchors)
	if len(got) == 0 {
		t.Fatal("no matches for wel")
	}
	top := got[0]
	if top.Label != "● Welcome" {
		t.Fatalf("top = %q, want ● Welcome", top.Label)
	}
	if len(top.Positions) != 3 {
		t.Errorf("positions = %v, want 3", top.Positions)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("rank %d scores %d above rank %d", i, got[i].Score, i-1)
		}
	}
}
