// ABOUTME: Fuzzy ranking of labels over sahilm/fuzzy
// ABOUTME: Rank orders every hit by score; Best picks the top one or reports none

package fuzzy

import "github.com/sahilm/fuzzy"

// Labels is an indexed collection of strings to match against.
type Labels = fuzzy.Source

// Match is one hit. Positions are the byte offsets of the matched characters
// in Label.
type Match struct {
	Label     string
	Index     int
	Positions []int
	Score     int
}

// Rank returns the labels matching pattern, best first. An empty pattern
// matches nothing.
func Rank(pattern string, labels Labels) []Match {
	if pattern == "" {
		return nil
	}
	found := fuzzy.FindFrom(pattern, labels)
	out := make([]Match, len(found))
	for i, f := range found {
		out[i] = Match{Label: f.Str, Index: f.Index, Positions: f.MatchedIndexes, Score: f.Score}
	}
	return out
}

// Best returns the top ranked match.
func Best(pattern string, labels Labels) (Match, bool) {
	ranked := Rank(pattern, labels)
	if len(ranked) == 0 {
		return Match{}, false
	}
	return ranked[0], true
}
