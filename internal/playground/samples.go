// ABOUTME: Built-in popup documents used when no content directory is configured
// ABOUTME: Each exercises a different placement override

package playground

import "github.com/mauromedda/affix-go/internal/config"

var sampleSources = []struct{ name, content string }{
	{"welcome", `---
title: Welcome
prefab: callout
---
# Affixed popups

The popup stays attached to its anchor while the document **scrolls**
and the terminal **resizes**. Press *tab* to visit the next anchor.
`},
	{"edges", `---
title: Edge fallback
edges: [over, under]
---
Only **over** and **under** are allowed here. Scroll until neither
fits and the popup keeps its last edge instead of disappearing.
`},
	{"center", `---
title: Centered
align: center
bridge: true
---
Centered alignment puts the popup midpoint on the anchor midpoint.
The arrow marks the anchor.
`},
	{"narrow", `---
title: Narrow column
edges: [left, right]
width: 24
---
Side placement wraps this text into a narrow column.
`},
}

// SampleDocs parses the built-in documents.
func SampleDocs() []config.Doc {
	docs := make([]config.Doc, 0, len(sampleSources))
	for _, s := range sampleSources {
		d, err := config.ParseDoc(s.name, s.content)
		if err != nil {
			continue
		}
		docs = append(docs, d)
	}
	return docs
}
