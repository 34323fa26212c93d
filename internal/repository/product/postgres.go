package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"iotshop/internal/domain"
)

type PostgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) *PostgresRepo {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &PostgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, key, name, COALESCE(description, ''), price_cents, currency, image, category, subcategory, stock, featured, specifications, compatible_with, reviews, rating, created_at, updated_at`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Key, &p.Name, &p.Description, &p.PriceCents, &p.Currency,
		&p.Image, &p.Category, &p.Subcategory, &p.Stock, &p.Featured,
		&p.Specifications, &p.CompatibleWith, &p.Reviews, &p.Rating, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepo) List(ctx context.Context, f Filter) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products`
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Subcategory != "" {
		add("subcategory = $%d", f.Subcategory)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if f.Featured {
		where = append(where, "featured")
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id::text = $1 OR key = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, key, name, description, price_cents, currency, image, category, subcategory, stock, featured, specifications, compatible_with, reviews, rating)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, COALESCE($12, '{}'::jsonb), COALESCE($13, '[]'::jsonb), COALESCE($14, '[]'::jsonb), $15)
ON CONFLICT (key) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    image = EXCLUDED.image,
    category = EXCLUDED.category,
    subcategory = EXCLUDED.subcategory,
    stock = EXCLUDED.stock,
    featured = EXCLUDED.featured,
    specifications = EXCLUDED.specifications,
    compatible_with = EXCLUDED.compatible_with,
    reviews = EXCLUDED.reviews,
    rating = EXCLUDED.rating,
    updated_at = now()
RETURNING id::text, created_at, updated_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Key,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Currency,
		product.Image,
		product.Category,
		product.Subcategory,
		product.Stock,
		product.Featured,
		product.Specifications,
		product.CompatibleWith,
		product.Reviews,
		product.Rating,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert key=%s error=%v", product.Key, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted key=%s id=%s", res.Key, res.ID)
	return &res, nil
}
