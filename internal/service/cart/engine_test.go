package cart

import (
	"errors"
	"testing"

	"iotshop/internal/domain"
)

func line(productID string, priceCents int64, qty int) domain.CartItem {
	return domain.CartItem{
		ProductID:      productID,
		Name:           "Product " + productID,
		UnitPriceCents: priceCents,
		Quantity:       qty,
	}
}

func TestAddItemMergesByProduct(t *testing.T) {
	c := Clear()
	c = AddItem(c, line("p1", 2299, 2))
	c = AddItem(c, line("p1", 2299, 3))

	if len(c.Items) != 1 {
		t.Fatalf("expected a single line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Items[0].Quantity)
	}
	if c.TotalItems != 5 || c.TotalCents != 5*2299 {
		t.Fatalf("unexpected totals: %+v", c)
	}
}

func TestAddItemAppendsNewProductsInOrder(t *testing.T) {
	c := Clear()
	c = AddItem(c, line("p1", 100, 1))
	c = AddItem(c, line("p2", 200, 1))
	c = AddItem(c, line("p3", 300, 1))

	if len(c.Items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(c.Items))
	}
	for i, want := range []string{"p1", "p2", "p3"} {
		if c.Items[i].ProductID != want {
			t.Fatalf("insertion order lost: %+v", c.Items)
		}
		if c.Items[i].LineID == "" {
			t.Fatalf("line %d has no line id", i)
		}
	}
	if c.TotalItems != 3 || c.TotalCents != 600 {
		t.Fatalf("unexpected totals: %+v", c)
	}
}

func TestAddItemClampsQuantity(t *testing.T) {
	c := AddItem(Clear(), line("p1", 100, 0))
	if c.Items[0].Quantity != 1 || c.TotalItems != 1 {
		t.Fatalf("expected clamped quantity 1, got %+v", c)
	}
}

func TestAddItemDoesNotMutateInput(t *testing.T) {
	base := AddItem(Clear(), line("p1", 100, 1))
	_ = AddItem(base, line("p1", 100, 9))
	if base.Items[0].Quantity != 1 || base.TotalItems != 1 {
		t.Fatalf("input cart mutated: %+v", base)
	}
}

func TestRemoveItemByLineID(t *testing.T) {
	c := AddItem(Clear(), line("p1", 100, 2))
	c = AddItem(c, line("p2", 200, 1))

	c = RemoveItem(c, c.Items[0].LineID)
	if len(c.Items) != 1 || c.Items[0].ProductID != "p2" {
		t.Fatalf("unexpected cart after remove: %+v", c)
	}
	if c.TotalItems != 1 || c.TotalCents != 200 {
		t.Fatalf("totals not recomputed: %+v", c)
	}

	// Unknown line is a no-op.
	c = RemoveItem(c, "missing")
	if len(c.Items) != 1 {
		t.Fatalf("remove of unknown line changed cart: %+v", c)
	}
}

func TestSetQuantity(t *testing.T) {
	c := AddItem(Clear(), line("p1", 2299, 2))
	lineID := c.Items[0].LineID

	c, err := SetQuantity(c, lineID, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Items[0].Quantity != 4 || c.TotalCents != 4*2299 {
		t.Fatalf("unexpected cart: %+v", c)
	}
}

func TestSetQuantityRejectsBelowOne(t *testing.T) {
	c := AddItem(Clear(), line("p1", 100, 2))
	got, err := SetQuantity(c, c.Items[0].LineID, 0)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if got.Items[0].Quantity != 2 {
		t.Fatalf("cart changed on rejected update: %+v", got)
	}
}

func TestSetQuantityUnknownLine(t *testing.T) {
	c := AddItem(Clear(), line("p1", 100, 1))
	if _, err := SetQuantity(c, "missing", 2); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClear(t *testing.T) {
	c := AddItem(Clear(), line("p1", 100, 3))
	c = Clear()
	if len(c.Items) != 0 || c.TotalItems != 0 || c.TotalCents != 0 {
		t.Fatalf("expected empty cart, got %+v", c)
	}
}

func TestScenarioSingleLineTotals(t *testing.T) {
	c := AddItem(Clear(), line("arduino", 2299, 2))
	if c.TotalCents != 4598 {
		t.Fatalf("expected 4598 cents, got %d", c.TotalCents)
	}
	if c.TotalItems != 2 {
		t.Fatalf("expected 2 items, got %d", c.TotalItems)
	}
}
