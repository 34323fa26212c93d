package project

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"iotshop/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const projectColumns = `id::text, user_id::text, components, requirements, total_cents, status, blueprint, created_at, updated_at`

func scanProject(row pgx.Row) (domain.CustomProject, error) {
	var p domain.CustomProject
	err := row.Scan(&p.ID, &p.UserID, &p.Components, &p.Requirements, &p.TotalCents, &p.Status, &p.Blueprint, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *postgresRepo) Create(ctx context.Context, p domain.CustomProject) (domain.CustomProject, error) {
	const q = `
INSERT INTO custom_projects (id, user_id, components, requirements, total_cents, status, blueprint)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, COALESCE($3, '[]'::jsonb), COALESCE($4, '{}'::jsonb), $5, $6, $7)
RETURNING id::text, created_at, updated_at
`
	res := p
	err := r.pool.QueryRow(ctx, q, p.ID, p.UserID, p.Components, p.Requirements, p.TotalCents, p.Status, p.Blueprint).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		r.logger.Printf("project repo: create user_id=%s error=%v", p.UserID, err)
		return domain.CustomProject{}, err
	}
	r.logger.Printf("project repo: created id=%s user_id=%s status=%s", res.ID, res.UserID, res.Status)
	return res, nil
}

func (r *postgresRepo) ByUser(ctx context.Context, userID string) ([]domain.CustomProject, error) {
	q := `SELECT ` + projectColumns + ` FROM custom_projects WHERE user_id::text = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("project repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomProject
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("project repo: list rows user_id=%s error=%v", userID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.CustomProject, error) {
	q := `SELECT ` + projectColumns + ` FROM custom_projects WHERE id::text = $1`
	p, err := scanProject(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("project repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}
