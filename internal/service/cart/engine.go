package cart

import (
	"errors"

	"github.com/google/uuid"

	"iotshop/internal/domain"
)

// ErrInvalidQuantity is returned when a quantity below 1 is requested.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// AddItem returns a new cart with item merged in. If a line for the same
// product already exists its quantity is increased; otherwise the item is
// appended with a fresh line id. Quantities below 1 are clamped to 1.
func AddItem(c domain.Cart, item domain.CartItem) domain.Cart {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	items := make([]domain.CartItem, len(c.Items))
	copy(items, c.Items)

	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		if item.LineID == "" {
			item.LineID = uuid.NewString()
		}
		items = append(items, item)
	}

	return recalculate(items)
}

// RemoveItem returns a new cart without the line identified by lineID.
// Removing an unknown line is a no-op.
func RemoveItem(c domain.Cart, lineID string) domain.Cart {
	items := make([]domain.CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.LineID != lineID {
			items = append(items, it)
		}
	}
	return recalculate(items)
}

// SetQuantity returns a new cart with the line's quantity replaced.
func SetQuantity(c domain.Cart, lineID string, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return c, ErrInvalidQuantity
	}

	items := make([]domain.CartItem, len(c.Items))
	copy(items, c.Items)

	found := false
	for i := range items {
		if items[i].LineID == lineID {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return c, domain.ErrNotFound
	}

	return recalculate(items), nil
}

// Clear returns the empty cart.
func Clear() domain.Cart {
	return recalculate(nil)
}

// recalculate derives totals from scratch so they can never drift.
func recalculate(items []domain.CartItem) domain.Cart {
	out := domain.Cart{Items: items}
	for _, it := range items {
		out.TotalItems += it.Quantity
		out.TotalCents += it.UnitPriceCents * int64(it.Quantity)
	}
	return out
}
