package product

import (
	"context"

	"iotshop/internal/domain"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Category    string
	Subcategory string
	Search      string
	Featured    bool
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
