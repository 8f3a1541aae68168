package tenant

import "context"

// Eraser removes every record in a namespace.
type Eraser interface {
	DeleteAll(ctx context.Context, namespace string) error
}
