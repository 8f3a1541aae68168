package tenant

import (
	"fmt"
	"strings"

	"github.com/parcelam/docdex/internal/domain"
)

// Namespace maps a tenant id to its isolation namespace inside the shared
// index. The mapping is identity over the trimmed id, which keeps it
// injective; sharding or aliasing policies would slot in here.
// Empty and whitespace-only tenant ids are rejected.
func Namespace(tenantID string) (string, error) {
	ns := strings.TrimSpace(tenantID)
	if ns == "" {
		return "", fmt.Errorf("tenant id is empty: %w", domain.ErrInvalidTenant)
	}
	return ns, nil
}
