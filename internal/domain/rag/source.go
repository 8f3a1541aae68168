package rag

// Source is a single ranked document fragment returned to the caller as
// retrieval evidence. Derived per query, never persisted.
type Source struct {
	id       string
	title    string
	content  string
	score    float64
	metadata map[string]any
}

// NewSource creates a Source.
func NewSource(id, title, content string, score float64, metadata map[string]any) Source {
	return Source{id: id, title: title, content: content, score: score, metadata: metadata}
}

// ID returns the source document identifier.
func (s *Source) ID() string { return s.id }

// Title returns the source title.
func (s *Source) Title() string { return s.title }

// Content returns the source body text.
func (s *Source) Content() string { return s.content }

// Score returns the reranked relevance score.
func (s *Source) Score() float64 { return s.score }

// Metadata returns all hit fields except content and title.
func (s *Source) Metadata() map[string]any { return s.metadata }
