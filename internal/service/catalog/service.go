// Package catalog is a thin read layer over the product and category
// repositories.
package catalog

import (
	"context"

	"iotshop/internal/domain"
	categoryrepo "iotshop/internal/repository/category"
	productrepo "iotshop/internal/repository/product"
)

type Service struct {
	products   productrepo.Repository
	categories categoryrepo.Repository
}

func New(products productrepo.Repository, categories categoryrepo.Repository) *Service {
	return &Service{products: products, categories: categories}
}

func (s *Service) Products(ctx context.Context, f productrepo.Filter) ([]domain.Product, error) {
	return s.products.List(ctx, f)
}

func (s *Service) Product(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx, productrepo.Filter{Featured: true})
}

// UpsertProduct creates or updates a catalog entry. Only admin accounts
// reach this through the HTTP layer.
func (s *Service) UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return s.products.Upsert(ctx, p)
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) Category(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categories.GetBySlug(ctx, slug)
}
