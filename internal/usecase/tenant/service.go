package tenant

import (
	"context"
	"fmt"

	domtenant "github.com/parcelam/docdex/internal/domain/tenant"
)

// Service erases tenant data from the shared index.
type Service struct {
	idx Eraser
}

// New creates a tenant service.
func New(idx Eraser) *Service {
	return &Service{idx: idx}
}

// Erase deletes all records in the tenant's namespace. Irreversible and
// total within the namespace; there is no confirmation or undo.
func (s *Service) Erase(ctx context.Context, tenantID string) error {
	ns, err := domtenant.Namespace(tenantID)
	if err != nil {
		return err
	}

	if err := s.idx.DeleteAll(ctx, ns); err != nil {
		return fmt.Errorf("delete tenant data: %w", err)
	}
	return nil
}
