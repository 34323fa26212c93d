package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"iotshop/internal/domain"
)

type memoryRepo struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
	byID    map[string]domain.User
}

func NewMemory(users []domain.User) Repository {
	r := &memoryRepo{
		byEmail: make(map[string]domain.User, len(users)),
		byID:    make(map[string]domain.User, len(users)),
	}
	for _, u := range users {
		r.byEmail[u.Email] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *memoryRepo) ByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *memoryRepo) ByID(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *memoryRepo) Create(_ context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return domain.User{}, domain.ErrAlreadyExists
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return u, nil
}
