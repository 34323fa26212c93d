package domain

// CartItem is one cart line: a product snapshot plus a quantity.
// LineID identifies the line itself; at most one line exists per ProductID.
type CartItem struct {
	LineID         string `json:"lineId"`
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Image          string `json:"image,omitempty"`
	Quantity       int    `json:"quantity"`
}

// Cart keeps lines in insertion order. TotalItems and TotalCents are derived
// and recomputed on every mutation, never patched incrementally.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalCents int64      `json:"totalCents"`
}
