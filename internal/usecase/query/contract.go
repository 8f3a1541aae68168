package query

import (
	"context"

	"github.com/parcelam/docdex/internal/index"
)

// Searcher runs retrieve-then-rerank searches against the semantic index.
type Searcher interface {
	Search(ctx context.Context, namespace string, req index.SearchRequest) ([]index.Hit, error)
}
