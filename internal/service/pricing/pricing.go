// Package pricing derives an order summary from cart state. All arithmetic is
// in integer cents; percentages are permyriad values rounded half-up.
package pricing

import (
	"fmt"
	"strings"

	"iotshop/internal/domain"
)

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

const (
	// PromoCode is the only accepted promo code, compared case-insensitively.
	PromoCode = "IOT20"

	discountPermyriad = 2000
	taxPermyriad      = 800

	StandardFeeCents     int64 = 599
	ExpressFeeCents      int64 = 999
	FreeShippingMinCents int64 = 5000
)

type Summary struct {
	SubtotalCents int64          `json:"subtotalCents"`
	DiscountCents int64          `json:"discountCents"`
	ShippingCents int64          `json:"shippingCents"`
	TaxCents      int64          `json:"taxCents"`
	TotalCents    int64          `json:"totalCents"`
	PromoApplied  bool           `json:"promoApplied"`
	Method        ShippingMethod `json:"shippingMethod"`
}

// Summarize computes the order summary for a cart. withTax applies the 8%
// checkout tax; the cart summary view passes false.
func Summarize(c domain.Cart, promoCode string, method ShippingMethod, withTax bool) Summary {
	if method != ShippingExpress {
		method = ShippingStandard
	}

	out := Summary{
		SubtotalCents: c.TotalCents,
		PromoApplied:  PromoApplies(promoCode),
		Method:        method,
	}

	if out.PromoApplied {
		out.DiscountCents = permyriadOf(out.SubtotalCents, discountPermyriad)
	}
	out.ShippingCents = shippingFee(out.SubtotalCents, method)
	if withTax {
		out.TaxCents = permyriadOf(out.SubtotalCents, taxPermyriad)
	}

	out.TotalCents = out.SubtotalCents - out.DiscountCents + out.ShippingCents + out.TaxCents
	return out
}

// PromoApplies reports whether code matches the fixed promo code.
func PromoApplies(code string) bool {
	return code != "" && strings.EqualFold(strings.TrimSpace(code), PromoCode)
}

func shippingFee(subtotalCents int64, method ShippingMethod) int64 {
	if method == ShippingExpress {
		return ExpressFeeCents
	}
	if subtotalCents > FreeShippingMinCents {
		return 0
	}
	return StandardFeeCents
}

func permyriadOf(amount, permyriad int64) int64 {
	return (amount*permyriad + 5000) / 10000
}

// Dollars renders cents with two-decimal fixed formatting, e.g. 4598 -> "45.98".
func Dollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
