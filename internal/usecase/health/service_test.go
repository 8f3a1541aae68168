package health

import (
	"context"
	"errors"
	"testing"

	"github.com/parcelam/docdex/internal/index"
)

type mockLister struct {
	backends []index.Backend
	err      error
}

func (m *mockLister) ListBackends(_ context.Context) ([]index.Backend, error) {
	return m.backends, m.err
}

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockLister{backends: []index.Backend{{Name: "docdex-prod", Driver: "pinecone"}}})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %q", report.Status)
	}
	if !report.IndexConnected || report.BackendCount != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestCheck_Degraded(t *testing.T) {
	svc := New(&mockLister{err: errors.New("dial timeout")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %q", report.Status)
	}
	if report.IndexConnected {
		t.Error("index must not be reported connected")
	}
}
