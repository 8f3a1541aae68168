// Package index defines the client boundary to the external semantic index.
// The core never computes embeddings or similarity itself; every backend
// implementing Client owns durable storage, vectorization, and ranking.
package index

import (
	"context"

	"github.com/parcelam/docdex/internal/domain/document"
)

// Client is the capability set required of any concrete index backend.
type Client interface {
	// Upsert writes records into a namespace, overwriting by id.
	Upsert(ctx context.Context, namespace string, records []document.Record) error
	// Search runs a semantic search with an integrated rerank pass.
	Search(ctx context.Context, namespace string, req SearchRequest) ([]Hit, error)
	// DeleteAll removes every record in a namespace.
	DeleteAll(ctx context.Context, namespace string) error
	// ListBackends describes the reachable index backends (liveness probe).
	ListBackends(ctx context.Context) ([]Backend, error)
	// Close releases backend resources.
	Close()
}

// SearchRequest is a two-stage retrieval request: a broad semantic fetch of
// TopK candidates followed by a rerank pass over Rerank.RankFields.
type SearchRequest struct {
	Query  string
	TopK   int
	Filter map[string]any
	Rerank Rerank
}

// Rerank describes the second-pass relevance reordering.
type Rerank struct {
	Model      string
	TopN       int
	RankFields []string
}

// Hit is a single ranked search result from the backend.
type Hit struct {
	ID     string
	Score  float64
	Fields map[string]any
}

// Backend describes one reachable index backend.
type Backend struct {
	Name   string
	Driver string
}
