package domain

// ShippingInfo holds the address fields entered during checkout. Every field
// is required before the payment step unlocks.
type ShippingInfo struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

// PaymentInfo holds card fields for the credit-card method. The paypal method
// carries no fields and skips card validation.
type PaymentInfo struct {
	Method     string `json:"method"`
	CardNumber string `json:"cardNumber,omitempty"`
	CardHolder string `json:"cardHolder,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
	CVV        string `json:"cvv,omitempty"`
}
