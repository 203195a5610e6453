package ports

import (
	"context"

	"github.com/aretw0/photosphere/pkg/domain"
)

// AtomDataSource yields the element records of one atom data store.
type AtomDataSource interface {
	// Elements returns every element record. Order is not significant.
	Elements(ctx context.Context) ([]domain.Element, error)
}
