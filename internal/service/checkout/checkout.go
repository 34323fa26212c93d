package checkout

import (
	"context"
	"errors"
	"sync"

	"iotshop/internal/domain"
	"iotshop/internal/service/pricing"
)

var (
	// ErrEmptyCart blocks entering checkout without items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotStarted is returned when no checkout exists for the session.
	ErrNotStarted = errors.New("checkout not started")
	// ErrStepOrder is returned when an operation is attempted out of order.
	ErrStepOrder = errors.New("previous checkout step not complete")
)

type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepReview
)

const (
	MethodCreditCard = "credit-card"
	MethodPayPal     = "paypal"
)

// Checkout is the per-session step machine state. Entered values survive
// backward navigation; the whole struct is discarded on order placement.
type Checkout struct {
	Step           Step
	Shipping       domain.ShippingInfo
	Payment        domain.PaymentInfo
	PromoCode      string
	ShippingMethod pricing.ShippingMethod
}

// Review is the read-only merge shown before placing the order.
type Review struct {
	Shipping domain.ShippingInfo
	Payment  domain.PaymentInfo
	Cart     domain.Cart
	Summary  pricing.Summary
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) (domain.Cart, error)
}

// Service holds in-flight checkouts keyed by session. Checkout state is
// deliberately not persisted: navigating away abandons it.
type Service struct {
	carts cartService

	mu       sync.Mutex
	sessions map[string]*Checkout
}

func New(carts cartService) *Service {
	return &Service{
		carts:    carts,
		sessions: make(map[string]*Checkout),
	}
}

// Begin starts (or restarts) checkout for the session. The cart must not be
// empty; callers redirect to the cart view on ErrEmptyCart.
func (s *Service) Begin(ctx context.Context, sessionID, promoCode string, method pricing.ShippingMethod) (Checkout, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return Checkout{}, err
	}
	if len(c.Items) == 0 {
		return Checkout{}, ErrEmptyCart
	}
	if method != pricing.ShippingExpress {
		method = pricing.ShippingStandard
	}

	co := &Checkout{
		Step:           StepShipping,
		PromoCode:      promoCode,
		ShippingMethod: method,
	}
	s.mu.Lock()
	s.sessions[sessionID] = co
	s.mu.Unlock()
	return *co, nil
}

// Current returns a copy of the session's checkout state.
func (s *Service) Current(sessionID string) (Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	co, ok := s.sessions[sessionID]
	if !ok {
		return Checkout{}, ErrNotStarted
	}
	return *co, nil
}

// SubmitShipping validates and records the shipping fields, advancing to the
// payment step. All fields are checked; all violations are reported.
func (s *Service) SubmitShipping(sessionID string, info domain.ShippingInfo, method pricing.ShippingMethod) (Checkout, error) {
	if err := validateShipping(info); err != nil {
		return Checkout{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	co, ok := s.sessions[sessionID]
	if !ok {
		return Checkout{}, ErrNotStarted
	}
	co.Shipping = info
	if method == pricing.ShippingExpress || method == pricing.ShippingStandard {
		co.ShippingMethod = method
	}
	if co.Step < StepPayment {
		co.Step = StepPayment
	}
	return *co, nil
}

// SubmitPayment validates and records payment fields, advancing to review.
// The paypal method carries no card fields and bypasses field validation.
func (s *Service) SubmitPayment(sessionID string, info domain.PaymentInfo) (Checkout, error) {
	if info.Method == "" {
		info.Method = MethodCreditCard
	}
	if info.Method != MethodPayPal {
		if err := validatePayment(info); err != nil {
			return Checkout{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	co, ok := s.sessions[sessionID]
	if !ok {
		return Checkout{}, ErrNotStarted
	}
	if co.Step < StepPayment {
		return Checkout{}, ErrStepOrder
	}
	co.Payment = info
	if co.Step < StepReview {
		co.Step = StepReview
	}
	return *co, nil
}

// Back steps backward without losing entered values.
func (s *Service) Back(sessionID string) (Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	co, ok := s.sessions[sessionID]
	if !ok {
		return Checkout{}, ErrNotStarted
	}
	if co.Step > StepShipping {
		co.Step--
	}
	return *co, nil
}

// BuildReview merges shipping, payment, cart and the taxed summary.
func (s *Service) BuildReview(ctx context.Context, sessionID string) (Review, error) {
	s.mu.Lock()
	co, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return Review{}, ErrNotStarted
	}
	if co.Step < StepReview {
		s.mu.Unlock()
		return Review{}, ErrStepOrder
	}
	snapshot := *co
	s.mu.Unlock()

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return Review{}, err
	}
	return Review{
		Shipping: snapshot.Shipping,
		Payment:  maskPayment(snapshot.Payment),
		Cart:     c,
		Summary:  pricing.Summarize(c, snapshot.PromoCode, snapshot.ShippingMethod, true),
	}, nil
}

// PlaceOrder terminates the flow from the review step: the cart is cleared
// and the checkout discarded. No order record is persisted.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	co, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return ErrNotStarted
	}
	if co.Step < StepReview {
		s.mu.Unlock()
		return ErrStepOrder
	}
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	_, err := s.carts.Clear(ctx, sessionID)
	return err
}

// Abandon drops the session's checkout, if any.
func (s *Service) Abandon(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

func maskPayment(p domain.PaymentInfo) domain.PaymentInfo {
	// The paypal path skips card validation, so the number may hold
	// anything. Mask only when enough digits survive stripping.
	digits := stripSpaces(p.CardNumber)
	if len(digits) >= 4 {
		p.CardNumber = "**** **** **** " + digits[len(digits)-4:]
	} else {
		p.CardNumber = ""
	}
	p.CVV = ""
	return p
}
