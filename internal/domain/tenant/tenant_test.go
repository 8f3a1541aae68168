package tenant

import (
	"errors"
	"testing"

	"github.com/parcelam/docdex/internal/domain"
)

func TestNamespace_Identity(t *testing.T) {
	ns, err := Namespace("acme-corp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ns != "acme-corp" {
		t.Errorf("expected identity mapping, got %q", ns)
	}
}

func TestNamespace_TrimsWhitespace(t *testing.T) {
	ns, err := Namespace("  acme-corp\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ns != "acme-corp" {
		t.Errorf("expected trimmed namespace, got %q", ns)
	}
}

func TestNamespace_RejectsEmpty(t *testing.T) {
	for _, id := range []string{"", "   ", "\t\n"} {
		if _, err := Namespace(id); !errors.Is(err, domain.ErrInvalidTenant) {
			t.Errorf("Namespace(%q): expected ErrInvalidTenant, got %v", id, err)
		}
	}
}

func TestNamespace_DistinctTenantsDistinctNamespaces(t *testing.T) {
	a, _ := Namespace("tenant-a")
	b, _ := Namespace("tenant-b")
	if a == b {
		t.Error("distinct tenants must map to distinct namespaces")
	}
}
