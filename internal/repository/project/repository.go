package project

import (
	"context"

	"iotshop/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.CustomProject) (domain.CustomProject, error)
	ByUser(ctx context.Context, userID string) ([]domain.CustomProject, error)
	GetByID(ctx context.Context, id string) (*domain.CustomProject, error)
}
