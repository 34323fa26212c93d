package product

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"iotshop/internal/domain"
)

// memoryRepo serves the embedded catalog when no database is configured.
type memoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]domain.Product
	ordering []string
}

func NewMemory(products []domain.Product) Repository {
	r := &memoryRepo{byID: make(map[string]domain.Product, len(products))}
	for _, p := range products {
		if _, ok := r.byID[p.ID]; !ok {
			r.ordering = append(r.ordering, p.ID)
		}
		r.byID[p.ID] = p
	}
	return r
}

func (r *memoryRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		for _, existing := range r.byID {
			if existing.Key == p.Key {
				p.ID = existing.ID
				break
			}
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if prev, ok := r.byID[p.ID]; ok {
		p.CreatedAt = prev.CreatedAt
	} else {
		p.CreatedAt = now
		r.ordering = append(r.ordering, p.ID)
	}
	p.UpdatedAt = now
	r.byID[p.ID] = p
	return &p, nil
}

func (r *memoryRepo) List(_ context.Context, f Filter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Product
	for _, id := range r.ordering {
		p := r.byID[id]
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Subcategory != "" && p.Subcategory != f.Subcategory {
			continue
		}
		if f.Featured && !p.Featured {
			continue
		}
		if f.Search != "" && !matchesSearch(p, f.Search) {
			continue
		}
		result = append(result, p)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.byID[id]; ok {
		return &p, nil
	}
	for _, p := range r.byID {
		if p.Key == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func matchesSearch(p domain.Product, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), s) ||
		strings.Contains(strings.ToLower(p.Description), s)
}
