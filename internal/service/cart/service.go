package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"iotshop/internal/domain"
	"iotshop/internal/store"
)

// Service applies cart engine operations to the session's persisted cart.
// Every successful mutation writes the full serialized cart back to the
// store under cart:<session>. Carts never expire.
type Service struct {
	kv store.KV
}

func New(kv store.KV) *Service {
	return &Service{kv: kv}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Get loads the session's cart; a missing key is an empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	raw, err := s.kv.Get(ctx, cartKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Clear(), nil
		}
		return domain.Cart{}, err
	}

	var c domain.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		// A corrupt blob is discarded rather than poisoning the session.
		return Clear(), nil
	}
	return c, nil
}

func (s *Service) Add(ctx context.Context, sessionID string, item domain.CartItem) (domain.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	c = AddItem(c, item)
	return c, s.persist(ctx, sessionID, c)
}

func (s *Service) Remove(ctx context.Context, sessionID, lineID string) (domain.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	c = RemoveItem(c, lineID)
	return c, s.persist(ctx, sessionID, c)
}

func (s *Service) SetQuantity(ctx context.Context, sessionID, lineID string, quantity int) (domain.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	c, err = SetQuantity(c, lineID, quantity)
	if err != nil {
		return c, err
	}
	return c, s.persist(ctx, sessionID, c)
}

func (s *Service) Clear(ctx context.Context, sessionID string) (domain.Cart, error) {
	c := Clear()
	return c, s.persist(ctx, sessionID, c)
}

func (s *Service) persist(ctx context.Context, sessionID string, c domain.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return s.kv.Set(ctx, cartKey(sessionID), raw, 0)
}
