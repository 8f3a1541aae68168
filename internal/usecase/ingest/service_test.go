package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/parcelam/docdex/internal/domain"
	"github.com/parcelam/docdex/internal/domain/document"
)

// --- Mocks ---

type upsertCall struct {
	namespace string
	records   []document.Record
}

type mockUpserter struct {
	calls   []upsertCall
	errs    map[int]error // call index -> error
	lastErr error
}

func (m *mockUpserter) Upsert(_ context.Context, namespace string, records []document.Record) error {
	n := len(m.calls)
	m.calls = append(m.calls, upsertCall{namespace: namespace, records: records})
	if err, ok := m.errs[n]; ok {
		m.lastErr = err
		return err
	}
	return nil
}

func makeDocs(n int) []document.Document {
	docs := make([]document.Document, n)
	for i := range docs {
		docs[i] = document.New("doc-"+string(rune('a'+i%26))+string(rune('0'+i/26)), "content", "", nil)
	}
	return docs
}

// --- IndexOne ---

func TestIndexOne_Success(t *testing.T) {
	idx := &mockUpserter{}
	svc := New(idx)

	err := svc.IndexOne(context.Background(), "acme", document.New("doc-1", "body", "Title", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(idx.calls) != 1 {
		t.Fatalf("expected 1 upsert call, got %d", len(idx.calls))
	}
	if idx.calls[0].namespace != "acme" {
		t.Errorf("namespace = %q", idx.calls[0].namespace)
	}
	if len(idx.calls[0].records) != 1 || idx.calls[0].records[0].ID() != "doc-1" {
		t.Errorf("unexpected records: %+v", idx.calls[0].records)
	}
}

func TestIndexOne_InvalidTenant(t *testing.T) {
	idx := &mockUpserter{}
	svc := New(idx)

	err := svc.IndexOne(context.Background(), "  ", document.New("doc-1", "body", "", nil))
	if !errors.Is(err, domain.ErrInvalidTenant) {
		t.Fatalf("expected ErrInvalidTenant, got %v", err)
	}
	if len(idx.calls) != 0 {
		t.Error("no upsert expected for invalid tenant")
	}
}

func TestIndexOne_ValidationError(t *testing.T) {
	idx := &mockUpserter{}
	svc := New(idx)

	err := svc.IndexOne(context.Background(), "acme", document.New("", "body", "", nil))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(idx.calls) != 0 {
		t.Error("no upsert expected for invalid document")
	}
}

func TestIndexOne_AdapterFailure(t *testing.T) {
	idx := &mockUpserter{errs: map[int]error{0: domain.ErrIndexUnavailable}}
	svc := New(idx)

	err := svc.IndexOne(context.Background(), "acme", document.New("doc-1", "body", "", nil))
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}

// --- IndexMany ---

func TestIndexMany_BatchPartitioning(t *testing.T) {
	// 200 docs at batch size 96 -> calls of 96, 96, 8.
	idx := &mockUpserter{}
	svc := New(idx)

	count, err := svc.IndexMany(context.Background(), "acme", makeDocs(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 200 {
		t.Errorf("count = %d, want 200", count)
	}
	if len(idx.calls) != 3 {
		t.Fatalf("expected 3 upsert calls, got %d", len(idx.calls))
	}
	for i, want := range []int{96, 96, 8} {
		if got := len(idx.calls[i].records); got != want {
			t.Errorf("batch %d size = %d, want %d", i, got, want)
		}
	}
}

func TestIndexMany_CustomBatchSize(t *testing.T) {
	idx := &mockUpserter{}
	svc := New(idx).WithBatchSize(10)

	count, err := svc.IndexMany(context.Background(), "acme", makeDocs(25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 25 {
		t.Errorf("count = %d", count)
	}
	if len(idx.calls) != 3 {
		t.Errorf("expected 3 calls, got %d", len(idx.calls))
	}
}

func TestIndexMany_PartialFailureStopsAndReportsCommitted(t *testing.T) {
	// Second of three batches fails: only the first batch counts and the
	// third batch is never attempted.
	idx := &mockUpserter{errs: map[int]error{1: domain.ErrIndexUnavailable}}
	svc := New(idx)

	count, err := svc.IndexMany(context.Background(), "acme", makeDocs(200))
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
	if count != 96 {
		t.Errorf("count = %d, want 96 (first batch only)", count)
	}
	if len(idx.calls) != 2 {
		t.Errorf("expected 2 upsert calls (no third batch), got %d", len(idx.calls))
	}
}

func TestIndexMany_ValidationAbortsBeforeAnyUpsert(t *testing.T) {
	idx := &mockUpserter{}
	svc := New(idx)

	docs := makeDocs(3)
	docs[1] = document.New("bad", "", "", nil)

	count, err := svc.IndexMany(context.Background(), "acme", docs)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if len(idx.calls) != 0 {
		t.Error("no upsert expected when validation fails")
	}
}

func TestIndexMany_Empty(t *testing.T) {
	idx := &mockUpserter{}
	svc := New(idx)

	count, err := svc.IndexMany(context.Background(), "acme", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 || len(idx.calls) != 0 {
		t.Errorf("count = %d, calls = %d", count, len(idx.calls))
	}
}
