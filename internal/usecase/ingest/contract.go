package ingest

import (
	"context"

	"github.com/parcelam/docdex/internal/domain/document"
)

// Upserter writes records into a tenant namespace of the semantic index.
type Upserter interface {
	Upsert(ctx context.Context, namespace string, records []document.Record) error
}
