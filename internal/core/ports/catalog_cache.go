package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// CatalogCache holds a short-lived copy of the full catalog listing.
// Implementations return (nil, false, nil) on a miss.
type CatalogCache interface {
	Get(ctx context.Context) ([]*domain.Sweet, bool, error)
	Set(ctx context.Context, sweets []*domain.Sweet) error
	Invalidate(ctx context.Context) error
}
