package category

import (
	"context"
	"errors"
	"io"
	"log"

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

func (r *PostgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id::text, name, slug, image, COALESCE(description, ''), created_at
FROM categories
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("category repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("category repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	const q = `
SELECT id::text, name, slug, image, COALESCE(description, ''), created_at
FROM categories
WHERE slug = $1
`
	var c domain.Category
	err := r.pool.QueryRow(ctx, q, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.Image, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("category repo: get slug=%s error=%v", slug, err)
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepo) Upsert(ctx context.Context, category domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (id, name, slug, image, description)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, NULLIF($5, ''))
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    image = EXCLUDED.image,
    description = EXCLUDED.description
RETURNING id::text, created_at
`
	res := category
	err := r.pool.QueryRow(ctx, q,
		category.ID,
		category.Name,
		category.Slug,
		category.Image,
		category.Description,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("category repo: upsert slug=%s error=%v", category.Slug, err)
		return nil, err
	}
	r.logger.Printf("category repo: upserted slug=%s id=%s", res.Slug, res.ID)
	return &res, nil
}
