package ingest

import (
	"context"
	"fmt"

	"github.com/parcelam/docdex/internal/domain/document"
	domtenant "github.com/parcelam/docdex/internal/domain/tenant"
)

// DefaultBatchSize bounds the records sent per upsert call, protecting the
// backend's per-call payload and rate limits.
const DefaultBatchSize = 96

// Service drives document ingestion into tenant namespaces.
type Service struct {
	idx       Upserter
	batchSize int
}

// New creates an ingestion service.
func New(idx Upserter) *Service {
	return &Service{idx: idx, batchSize: DefaultBatchSize}
}

// WithBatchSize configures the upsert batch size.
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 {
		s.batchSize = size
	}
	return s
}

// IndexOne normalizes and upserts a single document into the tenant's
// namespace. Idempotent: a repeated id overwrites the earlier record.
func (s *Service) IndexOne(ctx context.Context, tenantID string, doc document.Document) error {
	ns, err := domtenant.Namespace(tenantID)
	if err != nil {
		return err
	}

	rec, err := document.Normalize(doc)
	if err != nil {
		return err
	}

	if err := s.idx.Upsert(ctx, ns, []document.Record{rec}); err != nil {
		return fmt.Errorf("upsert document %s: %w", rec.ID(), err)
	}
	return nil
}

// IndexMany normalizes every document, then upserts them in consecutive
// batches of at most batchSize records, in order. Batches run sequentially:
// later documents with a conflicting id deterministically overwrite earlier
// ones. Any validation error aborts before the first upsert; a batch failure
// stops the remaining batches. The returned count is the number of records
// committed before the failure, so callers see partial progress.
func (s *Service) IndexMany(ctx context.Context, tenantID string, docs []document.Document) (int, error) {
	ns, err := domtenant.Namespace(tenantID)
	if err != nil {
		return 0, err
	}

	records := make([]document.Record, 0, len(docs))
	for i := range docs {
		rec, err := document.Normalize(docs[i])
		if err != nil {
			return 0, err
		}
		records = append(records, rec)
	}

	committed := 0
	for start := 0; start < len(records); start += s.batchSize {
		end := min(start+s.batchSize, len(records))
		batch := records[start:end]

		if err := s.idx.Upsert(ctx, ns, batch); err != nil {
			return committed, fmt.Errorf("upsert batch at offset %d: %w", start, err)
		}
		committed += len(batch)
	}

	return committed, nil
}
