package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"iotshop/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, category domain.Category) (*domain.Category, error)
}

// JSONImporter reads a catalog export and inserts/updates categories and
// products. The document shape matches the storefront API payloads.
type JSONImporter struct {
	reader     io.Reader
	products   ProductWriter
	categories CategoryWriter
}

func NewJSONImporter(r io.Reader, products ProductWriter, categories CategoryWriter) *JSONImporter {
	return &JSONImporter{reader: r, products: products, categories: categories}
}

type catalogDoc struct {
	Categories []domain.Category `json:"categories"`
	Products   []domain.Product  `json:"products"`
}

// Run decodes the document and upserts categories before products, so
// product category references always resolve.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var doc catalogDoc
	if err := json.NewDecoder(i.reader).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode catalog: %w", err)
	}

	imported := 0
	for _, c := range doc.Categories {
		if c.Slug == "" || c.Name == "" {
			return imported, fmt.Errorf("invalid category (missing slug or name) for %q", c.Name)
		}
		if _, err := i.categories.Upsert(ctx, c); err != nil {
			return imported, fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
		imported++
	}

	for _, p := range doc.Products {
		if err := validateProduct(p); err != nil {
			return imported, err
		}
		if _, err := i.products.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %s: %w", p.Key, err)
		}
		imported++
	}

	return imported, nil
}

func validateProduct(p domain.Product) error {
	if p.Key == "" || p.Name == "" {
		return fmt.Errorf("invalid product (missing key or name) for key %q", p.Key)
	}
	if p.PriceCents <= 0 {
		return fmt.Errorf("invalid price for key %q: %d", p.Key, p.PriceCents)
	}
	if p.Currency == "" {
		return fmt.Errorf("missing currency for key %q", p.Key)
	}
	return nil
}
