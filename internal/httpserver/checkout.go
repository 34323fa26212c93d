package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iotshop/internal/domain"
	checkoutsvc "iotshop/internal/service/checkout"
	"iotshop/internal/service/pricing"
)

type beginCheckoutRequest struct {
	PromoCode      string `json:"promoCode"`
	ShippingMethod string `json:"shippingMethod"`
}

type shippingRequest struct {
	domain.ShippingInfo
	ShippingMethod string `json:"shippingMethod"`
}

type checkoutResponse struct {
	Step           int                 `json:"step"`
	Shipping       domain.ShippingInfo `json:"shipping"`
	PromoCode      string              `json:"promoCode,omitempty"`
	ShippingMethod string              `json:"shippingMethod"`
}

func toCheckoutResponse(co checkoutsvc.Checkout) checkoutResponse {
	// Payment details never echo back; the review endpoint returns a
	// masked view instead.
	return checkoutResponse{
		Step:           int(co.Step),
		Shipping:       co.Shipping,
		PromoCode:      co.PromoCode,
		ShippingMethod: string(co.ShippingMethod),
	}
}

type reviewResponse struct {
	Shipping domain.ShippingInfo `json:"shipping"`
	Payment  domain.PaymentInfo  `json:"payment"`
	Cart     domain.Cart         `json:"cart"`
	Summary  summaryResponse     `json:"summary"`
}

func registerCheckoutRoutes(g *gin.RouterGroup, co checkoutService) {
	g.POST("/checkout", beginCheckoutHandler(co))
	g.GET("/checkout", currentCheckoutHandler(co))
	g.POST("/checkout/shipping", submitShippingHandler(co))
	g.POST("/checkout/payment", submitPaymentHandler(co))
	g.POST("/checkout/back", checkoutBackHandler(co))
	g.GET("/checkout/review", checkoutReviewHandler(co))
	g.POST("/checkout/order", placeOrderHandler(co))
	g.DELETE("/checkout", abandonCheckoutHandler(co))
}

func beginCheckoutHandler(co checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req beginCheckoutRequest
		// The body is optional; an empty checkout starts with defaults.
		_ = c.ShouldBindJSON(&req)

		state, err := co.Begin(c.Request.Context(), sessionID(c), req.PromoCode, pricing.ShippingMethod(req.ShippingMethod))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"checkout": toCheckoutResponse(state)})
	}
}

func currentCheckoutHandler(co checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := co.Current(sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"checkout": toCheckoutResponse(state)})
	}
}

func submitShippingHandler(co checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shippingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		state, err := co.SubmitShipping(sessionID(c), req.ShippingInfo, pricing.ShippingMethod(req.ShippingMethod))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"checkout": toCheckoutResponse(state)})
	}
}

func submitPaymentHandler(co checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.PaymentInfo
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		state, err := co.SubmitPayment(sessionID(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"checkout": toCheckoutResponse(state)})
	}
}

func checkoutBackHandler(co checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := co.Back(sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"checkout": toCheckoutResponse(state)})
	}
}

func checkoutReviewHandler(co checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		review, err := co.BuildReview(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"review": reviewResponse{
			Shipping: review.Shipping,
			Payment:  review.Payment,
			Cart:     review.Cart,
			Summary:  toSummaryResponse(review.Summary),
		}})
	}
}

func abandonCheckoutHandler(co checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		co.Abandon(sessionID(c))
		c.Status(http.StatusNoContent)
	}
}

func placeOrderHandler(co checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := co.PlaceOrder(c.Request.Context(), sessionID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "order placed"})
	}
}
