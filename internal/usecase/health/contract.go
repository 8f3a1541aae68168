package health

import (
	"context"

	"github.com/parcelam/docdex/internal/index"
)

// BackendLister probes the semantic index for reachable backends.
type BackendLister interface {
	ListBackends(ctx context.Context) ([]index.Backend, error)
}
