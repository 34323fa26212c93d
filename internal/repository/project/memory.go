package project

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"iotshop/internal/domain"
)

type memoryRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.CustomProject
}

func NewMemory() Repository {
	return &memoryRepo{byID: make(map[string]domain.CustomProject)}
}

func (r *memoryRepo) Create(_ context.Context, p domain.CustomProject) (domain.CustomProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.byID[p.ID] = p
	return p, nil
}

func (r *memoryRepo) ByUser(_ context.Context, userID string) ([]domain.CustomProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.CustomProject
	for _, p := range r.byID {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	// Newest first, matching the SQL ordering.
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.CustomProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.byID[id]; ok {
		return &p, nil
	}
	return nil, domain.ErrNotFound
}
