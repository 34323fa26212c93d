package category

import (
	"context"
	"sort"
	"sync"

	"iotshop/internal/domain"
)

type memoryRepo struct {
	mu     sync.RWMutex
	bySlug map[string]domain.Category
}

func NewMemory(categories []domain.Category) Repository {
	r := &memoryRepo{bySlug: make(map[string]domain.Category, len(categories))}
	for _, c := range categories {
		r.bySlug[c.Slug] = c
	}
	return r
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Category, 0, len(r.bySlug))
	for _, c := range r.bySlug {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.bySlug[slug]; ok {
		return &c, nil
	}
	return nil, domain.ErrNotFound
}
