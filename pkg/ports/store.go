package ports

import (
	"context"

	"github.com/aretw0/photosphere/pkg/domain"
)

// AtomDataCache stores decoded atom data between runs.
// Implementations must be safe for concurrent use.
type AtomDataCache interface {
	// Save stores elements under key, replacing any previous value.
	Save(ctx context.Context, key string, elements []domain.Element) error

	// Load retrieves the elements stored under key.
	// Returns domain.ErrCacheMiss if the key is absent or expired.
	Load(ctx context.Context, key string) ([]domain.Element, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
