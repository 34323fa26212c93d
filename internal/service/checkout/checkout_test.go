package checkout

import (
	"context"
	"errors"
	"testing"

	"iotshop/internal/domain"
	"iotshop/internal/service/pricing"
)

type stubCarts struct {
	cart       domain.Cart
	getErr     error
	clearCalls int
}

func (s *stubCarts) Get(_ context.Context, _ string) (domain.Cart, error) {
	return s.cart, s.getErr
}

func (s *stubCarts) Clear(_ context.Context, _ string) (domain.Cart, error) {
	s.clearCalls++
	s.cart = domain.Cart{}
	return s.cart, nil
}

func filledCart() domain.Cart {
	return domain.Cart{
		Items:      []domain.CartItem{{LineID: "l1", ProductID: "1", Name: "Arduino Uno R3", UnitPriceCents: 2299, Quantity: 2}},
		TotalItems: 2,
		TotalCents: 4598,
	}
}

func validShipping() domain.ShippingInfo {
	return domain.ShippingInfo{
		FullName: "John Doe",
		Address:  "1 Maker Way",
		City:     "Springfield",
		State:    "IL",
		ZipCode:  "62704",
		Country:  "US",
		Phone:    "555-0101",
	}
}

func validPayment() domain.PaymentInfo {
	return domain.PaymentInfo{
		Method:     MethodCreditCard,
		CardNumber: "4242 4242 4242 4242",
		CardHolder: "John Doe",
		ExpiryDate: "04/29",
		CVV:        "123",
	}
}

func begun(t *testing.T) (*Service, *stubCarts) {
	t.Helper()
	carts := &stubCarts{cart: filledCart()}
	svc := New(carts)
	if _, err := svc.Begin(context.Background(), "s1", "", pricing.ShippingStandard); err != nil {
		t.Fatalf("begin: %v", err)
	}
	return svc, carts
}

func TestBeginRejectsEmptyCart(t *testing.T) {
	svc := New(&stubCarts{})
	_, err := svc.Begin(context.Background(), "s1", "", pricing.ShippingStandard)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestShippingRequiresEveryField(t *testing.T) {
	svc, _ := begun(t)

	info := validShipping()
	info.City = "   "
	info.Phone = ""
	_, err := svc.SubmitShipping("s1", info, pricing.ShippingStandard)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field violations, got %v", verr.Fields)
	}
	if verr.Fields["city"] == "" || verr.Fields["phone"] == "" {
		t.Fatalf("missing field messages: %v", verr.Fields)
	}

	// Blocked transition leaves the machine on the shipping step.
	co, err := svc.Current("s1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if co.Step != StepShipping {
		t.Fatalf("expected shipping step, got %d", co.Step)
	}
}

func TestShippingAdvancesToPayment(t *testing.T) {
	svc, _ := begun(t)
	co, err := svc.SubmitShipping("s1", validShipping(), pricing.ShippingExpress)
	if err != nil {
		t.Fatalf("submit shipping: %v", err)
	}
	if co.Step != StepPayment {
		t.Fatalf("expected payment step, got %d", co.Step)
	}
	if co.ShippingMethod != pricing.ShippingExpress {
		t.Fatalf("shipping method not recorded: %v", co.ShippingMethod)
	}
}

func TestPaymentValidation(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*domain.PaymentInfo)
		field string
	}{
		{"short card", func(p *domain.PaymentInfo) { p.CardNumber = "4242 4242" }, "cardNumber"},
		{"alpha card", func(p *domain.PaymentInfo) { p.CardNumber = "4242 4242 4242 424x" }, "cardNumber"},
		{"blank holder", func(p *domain.PaymentInfo) { p.CardHolder = " " }, "cardHolder"},
		{"month 00", func(p *domain.PaymentInfo) { p.ExpiryDate = "00/29" }, "expiryDate"},
		{"month 13", func(p *domain.PaymentInfo) { p.ExpiryDate = "13/29" }, "expiryDate"},
		{"bad format", func(p *domain.PaymentInfo) { p.ExpiryDate = "4/29" }, "expiryDate"},
		{"cvv short", func(p *domain.PaymentInfo) { p.CVV = "12" }, "cvv"},
		{"cvv long", func(p *domain.PaymentInfo) { p.CVV = "12345" }, "cvv"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := begun(t)
			if _, err := svc.SubmitShipping("s1", validShipping(), pricing.ShippingStandard); err != nil {
				t.Fatalf("submit shipping: %v", err)
			}

			info := validPayment()
			tc.mut(&info)
			_, err := svc.SubmitPayment("s1", info)

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Fields[tc.field] == "" {
				t.Fatalf("expected violation on %s, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestPaymentAcceptsSpacedCardNumber(t *testing.T) {
	svc, _ := begun(t)
	if _, err := svc.SubmitShipping("s1", validShipping(), pricing.ShippingStandard); err != nil {
		t.Fatalf("submit shipping: %v", err)
	}
	co, err := svc.SubmitPayment("s1", validPayment())
	if err != nil {
		t.Fatalf("submit payment: %v", err)
	}
	if co.Step != StepReview {
		t.Fatalf("expected review step, got %d", co.Step)
	}
}

func TestPayPalBypassesCardValidation(t *testing.T) {
	svc, _ := begun(t)
	if _, err := svc.SubmitShipping("s1", validShipping(), pricing.ShippingStandard); err != nil {
		t.Fatalf("submit shipping: %v", err)
	}
	co, err := svc.SubmitPayment("s1", domain.PaymentInfo{Method: MethodPayPal})
	if err != nil {
		t.Fatalf("paypal submit: %v", err)
	}
	if co.Step != StepReview {
		t.Fatalf("expected review step, got %d", co.Step)
	}
}

func TestReviewSurvivesPayPalWithStrayCardFields(t *testing.T) {
	// Card fields submitted alongside the paypal method skip validation,
	// so review masking must cope with arbitrary junk in them.
	cases := []struct {
		name   string
		card   string
		masked string
	}{
		{"empty", "", ""},
		{"too few digits", "1 2 3", ""},
		{"exactly four", "1234", "**** **** **** 1234"},
		{"spaced junk", "12 34 56", "**** **** **** 3456"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := begun(t)
			ctx := context.Background()
			if _, err := svc.SubmitShipping("s1", validShipping(), pricing.ShippingStandard); err != nil {
				t.Fatalf("submit shipping: %v", err)
			}
			if _, err := svc.SubmitPayment("s1", domain.PaymentInfo{Method: MethodPayPal, CardNumber: tc.card, CVV: "9"}); err != nil {
				t.Fatalf("paypal submit: %v", err)
			}

			review, err := svc.BuildReview(ctx, "s1")
			if err != nil {
				t.Fatalf("review: %v", err)
			}
			if review.Payment.CardNumber != tc.masked {
				t.Fatalf("expected card %q, got %q", tc.masked, review.Payment.CardNumber)
			}
			if review.Payment.CVV != "" {
				t.Fatalf("cvv leaked into review")
			}
		})
	}
}

func TestPaymentBeforeShippingBlocked(t *testing.T) {
	svc, _ := begun(t)
	_, err := svc.SubmitPayment("s1", validPayment())
	if !errors.Is(err, ErrStepOrder) {
		t.Fatalf("expected ErrStepOrder, got %v", err)
	}
}

func TestBackPreservesEnteredValues(t *testing.T) {
	svc, _ := begun(t)
	if _, err := svc.SubmitShipping("s1", validShipping(), pricing.ShippingStandard); err != nil {
		t.Fatalf("submit shipping: %v", err)
	}

	co, err := svc.Back("s1")
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if co.Step != StepShipping {
		t.Fatalf("expected shipping step, got %d", co.Step)
	}
	if co.Shipping != validShipping() {
		t.Fatalf("shipping values lost on back: %+v", co.Shipping)
	}
}

func TestReviewMergesCartAndSummary(t *testing.T) {
	carts := &stubCarts{cart: filledCart()}
	svc := New(carts)
	ctx := context.Background()

	if _, err := svc.Begin(ctx, "s1", "IOT20", pricing.ShippingStandard); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := svc.SubmitShipping("s1", validShipping(), pricing.ShippingStandard); err != nil {
		t.Fatalf("submit shipping: %v", err)
	}
	if _, err := svc.SubmitPayment("s1", validPayment()); err != nil {
		t.Fatalf("submit payment: %v", err)
	}

	review, err := svc.BuildReview(ctx, "s1")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if review.Summary.SubtotalCents != 4598 || review.Summary.DiscountCents != 920 {
		t.Fatalf("unexpected summary: %+v", review.Summary)
	}
	if review.Summary.TaxCents == 0 {
		t.Fatalf("review summary must include tax")
	}
	if review.Payment.CVV != "" {
		t.Fatalf("cvv leaked into review")
	}
	if review.Payment.CardNumber != "**** **** **** 4242" {
		t.Fatalf("card number not masked: %q", review.Payment.CardNumber)
	}
}

func TestReviewBeforePaymentBlocked(t *testing.T) {
	svc, _ := begun(t)
	if _, err := svc.BuildReview(context.Background(), "s1"); !errors.Is(err, ErrStepOrder) {
		t.Fatalf("expected ErrStepOrder, got %v", err)
	}
}

func TestPlaceOrderClearsCartAndEndsFlow(t *testing.T) {
	svc, carts := begun(t)
	ctx := context.Background()

	if _, err := svc.SubmitShipping("s1", validShipping(), pricing.ShippingStandard); err != nil {
		t.Fatalf("submit shipping: %v", err)
	}
	if _, err := svc.SubmitPayment("s1", validPayment()); err != nil {
		t.Fatalf("submit payment: %v", err)
	}
	if err := svc.PlaceOrder(ctx, "s1"); err != nil {
		t.Fatalf("place order: %v", err)
	}
	if carts.clearCalls != 1 {
		t.Fatalf("expected cart cleared once, got %d", carts.clearCalls)
	}
	if _, err := svc.Current("s1"); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected checkout discarded, got %v", err)
	}
}

func TestPlaceOrderBeforeReviewBlocked(t *testing.T) {
	svc, carts := begun(t)
	if err := svc.PlaceOrder(context.Background(), "s1"); !errors.Is(err, ErrStepOrder) {
		t.Fatalf("expected ErrStepOrder, got %v", err)
	}
	if carts.clearCalls != 0 {
		t.Fatalf("cart cleared on blocked placement")
	}
}

func TestAbandonDiscardsState(t *testing.T) {
	svc, _ := begun(t)
	svc.Abandon("s1")
	if _, err := svc.Current("s1"); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted after abandon, got %v", err)
	}
}
