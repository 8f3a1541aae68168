package document

import (
	"fmt"
	"strings"

	"github.com/parcelam/docdex/internal/domain"
)

// Reserved record field names. Caller metadata cannot override them.
const (
	FieldID      = "_id"
	FieldContent = "content"
	FieldTitle   = "title"
)

// Document is an incoming tenant document prior to normalization
// (immutable value object).
type Document struct {
	id       string
	content  string
	title    string
	metadata map[string]any
}

// New creates a Document. Validation happens in Normalize so that callers
// can collect per-document errors instead of failing at construction.
func New(id, content, title string, metadata map[string]any) Document {
	return Document{id: id, content: content, title: title, metadata: cloneAnyMap(metadata)}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Content returns the primary searchable text.
func (d *Document) Content() string { return d.content }

// Title returns the optional document title.
func (d *Document) Title() string { return d.title }

// Metadata returns the free-form metadata fields.
func (d *Document) Metadata() map[string]any { return d.metadata }

// Record is the normalized, index-ready form of a Document: a stable id,
// the body text, and the flattened metadata fields.
type Record struct {
	id      string
	content string
	fields  map[string]any
}

// Normalize validates a Document and flattens it into a Record.
// The id and content are required; metadata values must be scalars.
// Reserved keys (_id, content) always win over caller metadata of the
// same name, and an explicit title wins over a metadata "title".
func Normalize(d Document) (Record, error) {
	id := strings.TrimSpace(d.id)
	if id == "" {
		return Record{}, fmt.Errorf("document id is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(d.content) == "" {
		return Record{}, fmt.Errorf("document %s: content is required: %w", id, domain.ErrValidation)
	}

	fields := make(map[string]any, len(d.metadata)+1)
	for k, v := range d.metadata {
		if k == FieldID || k == FieldContent {
			continue
		}
		if !isScalar(v) {
			return Record{}, fmt.Errorf(
				"document %s: metadata field %q must be a scalar: %w",
				id, k, domain.ErrValidation,
			)
		}
		fields[k] = v
	}
	if d.title != "" {
		fields[FieldTitle] = d.title
	}

	return Record{id: id, content: d.content, fields: fields}, nil
}

// ID returns the record identifier.
func (r *Record) ID() string { return r.id }

// Content returns the record body text.
func (r *Record) Content() string { return r.content }

// Fields returns the flattened metadata fields (title included).
func (r *Record) Fields() map[string]any { return r.fields }

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int32, int64,
		float32, float64:
		return true
	default:
		return false
	}
}

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
