package user

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const userColumns = `id::text, name, email, password_hash, is_admin, created_at`

func (r *postgresRepo) ByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *postgresRepo) ByID(ctx context.Context, id string) (domain.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id::text = $1`, id)
}

func (r *postgresRepo) get(ctx context.Context, q, arg string) (domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		r.logger.Printf("user repo: get error=%v", err)
		return domain.User{}, err
	}
	return u, nil
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
INSERT INTO users (id, name, email, password_hash, is_admin)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5)
RETURNING id::text, created_at
`
	res := u
	err := r.pool.QueryRow(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.IsAdmin).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Printf("user repo: create email=%s already exists", u.Email)
			return domain.User{}, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create email=%s error=%v", u.Email, err)
		return domain.User{}, err
	}
	r.logger.Printf("user repo: created email=%s id=%s", res.Email, res.ID)
	return res, nil
}
