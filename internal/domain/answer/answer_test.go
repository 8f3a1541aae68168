package answer

import (
	"strings"
	"testing"

	"github.com/parcelam/docdex/internal/domain/rag"
)

func TestSynthesize_EmptyReturnsFallback(t *testing.T) {
	if got := Synthesize(nil); got != Fallback {
		t.Errorf("Synthesize(nil) = %q", got)
	}
	if got := Synthesize([]rag.Source{}); got != Fallback {
		t.Errorf("Synthesize(empty) = %q", got)
	}
}

func TestSynthesize_SingleSource(t *testing.T) {
	sources := []rag.Source{
		rag.NewSource("doc1", "Tracking Guide", "Short content.", 0.874, nil),
	}

	got := Synthesize(sources)
	want := "Based on the documentation:\n\n" +
		"1. Tracking Guide (Relevance: 87.4%)\n" +
		"Short content....\n\n"
	if got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestSynthesize_UsesAtMostThreeSources(t *testing.T) {
	sources := []rag.Source{
		rag.NewSource("a", "First", "one", 0.9, nil),
		rag.NewSource("b", "Second", "two", 0.8, nil),
		rag.NewSource("c", "Third", "three", 0.7, nil),
		rag.NewSource("d", "Fourth", "four", 0.6, nil),
	}

	got := Synthesize(sources)
	if !strings.Contains(got, "3. Third") {
		t.Error("third source missing")
	}
	if strings.Contains(got, "Fourth") {
		t.Error("fourth source must not be cited")
	}
}

func TestSynthesize_PreservesRankOrder(t *testing.T) {
	// Lower-scored source listed first must stay first: no re-sorting.
	sources := []rag.Source{
		rag.NewSource("a", "Low", "x", 0.1, nil),
		rag.NewSource("b", "High", "y", 0.9, nil),
	}

	got := Synthesize(sources)
	if strings.Index(got, "1. Low") < 0 || strings.Index(got, "1. Low") > strings.Index(got, "2. High") {
		t.Errorf("rank order not preserved:\n%s", got)
	}
}

func TestSynthesize_TruncatesContentTo300Runes(t *testing.T) {
	long := strings.Repeat("ж", 450)
	sources := []rag.Source{
		rag.NewSource("a", "Doc", long, 0.5, nil),
	}

	got := Synthesize(sources)
	want := strings.Repeat("ж", 300) + "..."
	if !strings.Contains(got, want) {
		t.Error("content not truncated to 300 runes with ellipsis")
	}
	if strings.Contains(got, strings.Repeat("ж", 301)) {
		t.Error("more than 300 runes of content quoted")
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	sources := []rag.Source{
		rag.NewSource("a", "Doc", "content", 0.321, map[string]any{"category": "x"}),
	}
	if Synthesize(sources) != Synthesize(sources) {
		t.Error("synthesis must be bit-for-bit reproducible")
	}
}
