// Package answer builds deterministic, template-based answers from ranked
// sources. No model inference: the same sources always produce the same text.
package answer

import (
	"fmt"
	"strings"

	"github.com/parcelam/docdex/internal/domain/rag"
)

const (
	// Fallback is returned when retrieval produced no sources.
	Fallback = "I couldn't find relevant information to answer your question."

	// maxSources caps how many ranked sources the answer cites.
	maxSources = 3
	// snippetLen caps the quoted content per source, in runes.
	snippetLen = 300
)

// Synthesize composes a human-readable answer from the top sources,
// in their existing rank order.
func Synthesize(sources []rag.Source) string {
	if len(sources) == 0 {
		return Fallback
	}

	var b strings.Builder
	b.WriteString("Based on the documentation:\n\n")

	for i := range sources {
		if i == maxSources {
			break
		}
		src := &sources[i]
		fmt.Fprintf(&b, "%d. %s (Relevance: %.1f%%)\n", i+1, src.Title(), src.Score()*100)
		b.WriteString(truncate(src.Content(), snippetLen))
		b.WriteString("...\n\n")
	}

	return b.String()
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
