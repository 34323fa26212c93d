package pricing

import (
	"testing"

	"iotshop/internal/domain"
)

func cartWithSubtotal(cents int64) domain.Cart {
	return domain.Cart{
		Items:      []domain.CartItem{{LineID: "l1", ProductID: "p1", UnitPriceCents: cents, Quantity: 1}},
		TotalItems: 1,
		TotalCents: cents,
	}
}

func TestPromoAppliesCaseInsensitive(t *testing.T) {
	for _, code := range []string{"IOT20", "iot20", "Iot20", " iot20 "} {
		if !PromoApplies(code) {
			t.Fatalf("expected %q to apply", code)
		}
	}
	for _, code := range []string{"", "IOT30", "IOT2O", "promo"} {
		if PromoApplies(code) {
			t.Fatalf("expected %q not to apply", code)
		}
	}
}

func TestDiscountIsTwentyPercent(t *testing.T) {
	s := Summarize(cartWithSubtotal(10000), "IOT20", ShippingStandard, false)
	if !s.PromoApplied {
		t.Fatalf("promo should apply")
	}
	if s.DiscountCents != 2000 {
		t.Fatalf("expected 2000 cents discount, got %d", s.DiscountCents)
	}
	if s.TotalCents != 10000-2000 {
		t.Fatalf("unexpected total %d", s.TotalCents)
	}
}

func TestStandardShippingFreeOverFifty(t *testing.T) {
	// Free strictly above $50.
	if s := Summarize(cartWithSubtotal(5001), "", ShippingStandard, false); s.ShippingCents != 0 {
		t.Fatalf("expected free shipping at 5001, got %d", s.ShippingCents)
	}
	if s := Summarize(cartWithSubtotal(5000), "", ShippingStandard, false); s.ShippingCents != StandardFeeCents {
		t.Fatalf("expected flat fee at 5000, got %d", s.ShippingCents)
	}
	if s := Summarize(cartWithSubtotal(4598), "", ShippingStandard, false); s.ShippingCents != StandardFeeCents {
		t.Fatalf("expected flat fee at 4598, got %d", s.ShippingCents)
	}
}

func TestExpressShippingAlwaysFlat(t *testing.T) {
	for _, subtotal := range []int64{100, 5000, 99999} {
		if s := Summarize(cartWithSubtotal(subtotal), "", ShippingExpress, false); s.ShippingCents != ExpressFeeCents {
			t.Fatalf("expected express fee at subtotal %d, got %d", subtotal, s.ShippingCents)
		}
	}
}

func TestTaxOnlyWhenRequested(t *testing.T) {
	withTax := Summarize(cartWithSubtotal(10000), "", ShippingStandard, true)
	if withTax.TaxCents != 800 {
		t.Fatalf("expected 800 cents tax, got %d", withTax.TaxCents)
	}
	without := Summarize(cartWithSubtotal(10000), "", ShippingStandard, false)
	if without.TaxCents != 0 {
		t.Fatalf("cart view must not apply tax, got %d", without.TaxCents)
	}
}

// Two Arduino Unos at $22.99: subtotal $45.98, promo 20%, standard shipping.
func TestScenarioArduinoPair(t *testing.T) {
	c := domain.Cart{
		Items:      []domain.CartItem{{LineID: "l1", ProductID: "1", UnitPriceCents: 2299, Quantity: 2}},
		TotalItems: 2,
		TotalCents: 4598,
	}

	s := Summarize(c, "iot20", ShippingStandard, false)
	if s.SubtotalCents != 4598 {
		t.Fatalf("expected subtotal 4598, got %d", s.SubtotalCents)
	}
	// 20% of 4598 is 919.6 cents; half-up rounding lands on 920.
	if s.DiscountCents != 920 {
		t.Fatalf("expected discount 920, got %d", s.DiscountCents)
	}
	if s.ShippingCents != StandardFeeCents {
		t.Fatalf("subtotal under threshold must pay the flat fee, got %d", s.ShippingCents)
	}
	if want := int64(4598 - 920 + 599); s.TotalCents != want {
		t.Fatalf("expected total %d, got %d", want, s.TotalCents)
	}
}

func TestSummarizeEmptyCart(t *testing.T) {
	s := Summarize(domain.Cart{}, "IOT20", ShippingStandard, true)
	if s.SubtotalCents != 0 || s.DiscountCents != 0 || s.TaxCents != 0 {
		t.Fatalf("unexpected summary for empty cart: %+v", s)
	}
	if s.ShippingCents != StandardFeeCents {
		t.Fatalf("empty cart still below free-shipping threshold, got %d", s.ShippingCents)
	}
}

func TestDollars(t *testing.T) {
	cases := map[int64]string{
		0:     "0.00",
		5:     "0.05",
		599:   "5.99",
		4598:  "45.98",
		-920:  "-9.20",
		10000: "100.00",
	}
	for cents, want := range cases {
		if got := Dollars(cents); got != want {
			t.Fatalf("Dollars(%d) = %q, want %q", cents, got, want)
		}
	}
}
