package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// SweetFilter carries the optional search predicates. Zero values mean
// "no constraint" for that field.
type SweetFilter struct {
	Name     string   // substring match on name
	Category string   // exact match
	MinPrice *float64 // price >= MinPrice (inclusive)
	MaxPrice *float64 // price <= MaxPrice (inclusive)
}

// SweetRepository defines persistence operations for sweets.
//
// DecrementQuantity and IncrementQuantity must each be a single conditional
// update against the store so that concurrent purchases/restocks on the same
// record never lose updates or drive quantity negative.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	List(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	// DecrementQuantity subtracts one unit, but only while quantity > 0.
	// Returns domain.ErrOutOfStock when the sweet exists with zero stock,
	// domain.ErrSweetNotFound when it does not exist.
	DecrementQuantity(ctx context.Context, id string) (*domain.Sweet, error)
	// IncrementQuantity adds amount units and returns the updated record.
	IncrementQuantity(ctx context.Context, id string, amount int) (*domain.Sweet, error)
}
