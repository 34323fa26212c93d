package httpserver

import (
	"context"

	"iotshop/internal/domain"
	productrepo "iotshop/internal/repository/product"
	"iotshop/internal/service/auth"
	"iotshop/internal/service/builder"
	"iotshop/internal/service/checkout"
	"iotshop/internal/service/pricing"
)

// The handler layer depends on narrow views of the services so tests can
// stub them.

type catalogService interface {
	Products(ctx context.Context, f productrepo.Filter) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	Featured(ctx context.Context) ([]domain.Product, error)
	UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Category(ctx context.Context, slug string) (*domain.Category, error)
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Add(ctx context.Context, sessionID string, item domain.CartItem) (domain.Cart, error)
	Remove(ctx context.Context, sessionID, lineID string) (domain.Cart, error)
	SetQuantity(ctx context.Context, sessionID, lineID string, quantity int) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) (domain.Cart, error)
}

type checkoutService interface {
	Begin(ctx context.Context, sessionID, promoCode string, method pricing.ShippingMethod) (checkout.Checkout, error)
	Current(sessionID string) (checkout.Checkout, error)
	SubmitShipping(sessionID string, info domain.ShippingInfo, method pricing.ShippingMethod) (checkout.Checkout, error)
	SubmitPayment(sessionID string, info domain.PaymentInfo) (checkout.Checkout, error)
	Back(sessionID string) (checkout.Checkout, error)
	BuildReview(ctx context.Context, sessionID string) (checkout.Review, error)
	PlaceOrder(ctx context.Context, sessionID string) error
	Abandon(sessionID string)
}

type authService interface {
	Login(ctx context.Context, sessionID, email, password string) (auth.Session, error)
	Register(ctx context.Context, sessionID, name, email, password string) (auth.Session, error)
	Logout(sessionID string)
	Verify(token string) (auth.Claims, error)
}

type builderService interface {
	Get(ctx context.Context, sessionID string) (builder.Draft, error)
	AddComponent(ctx context.Context, sessionID string, p domain.Product) (builder.Draft, error)
	RemoveComponent(ctx context.Context, sessionID, componentID string) (builder.Draft, error)
	SetComponentQuantity(ctx context.Context, sessionID, componentID string, quantity int) (builder.Draft, error)
	SetRequirements(ctx context.Context, sessionID string, req domain.ProjectRequirements) (builder.Draft, error)
	Generate(ctx context.Context, sessionID string) (builder.Draft, error)
	Back(ctx context.Context, sessionID string) (builder.Draft, error)
	Save(ctx context.Context, sessionID, userID string) (domain.CustomProject, error)
	Submit(ctx context.Context, sessionID, userID string) (domain.CustomProject, error)
	Projects(ctx context.Context, userID string) ([]domain.CustomProject, error)
	Project(ctx context.Context, userID, projectID string) (domain.CustomProject, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	Catalog  catalogService
	Carts    cartService
	Checkout checkoutService
	Auth     authService
	Builder  builderService
}
