package user

import (
	"context"

	"iotshop/internal/domain"
)

type Repository interface {
	ByEmail(ctx context.Context, email string) (domain.User, error)
	ByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}
