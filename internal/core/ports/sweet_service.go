package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// SweetInput carries the mutable fields for create and update.
type SweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

// SweetService defines the inventory use-cases.
type SweetService interface {
	Create(ctx context.Context, input SweetInput) (*domain.Sweet, error)
	List(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, input SweetInput) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	Purchase(ctx context.Context, id string) (*domain.Sweet, error)
	Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error)
}
