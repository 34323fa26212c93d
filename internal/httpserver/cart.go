package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iotshop/internal/domain"
	"iotshop/internal/service/pricing"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// summaryResponse carries both raw cents and display-ready strings, so
// clients never do money math in floats.
type summaryResponse struct {
	pricing.Summary
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func toSummaryResponse(s pricing.Summary) summaryResponse {
	return summaryResponse{
		Summary:  s,
		Subtotal: pricing.Dollars(s.SubtotalCents),
		Discount: pricing.Dollars(s.DiscountCents),
		Shipping: pricing.Dollars(s.ShippingCents),
		Tax:      pricing.Dollars(s.TaxCents),
		Total:    pricing.Dollars(s.TotalCents),
	}
}

func registerCartRoutes(g *gin.RouterGroup, carts cartService, catalog catalogService) {
	g.GET("/cart", getCartHandler(carts))
	g.POST("/cart/items", addCartItemHandler(carts, catalog))
	g.PATCH("/cart/items/:lineId", setCartQuantityHandler(carts))
	g.DELETE("/cart/items/:lineId", removeCartItemHandler(carts))
	g.DELETE("/cart", clearCartHandler(carts))
	g.GET("/cart/summary", cartSummaryHandler(carts))
}

func getCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// addCartItemHandler resolves the product server-side so clients cannot
// invent prices.
func addCartItemHandler(carts cartService, catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "productId is required")
			return
		}

		p, err := catalog.Product(c.Request.Context(), req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}

		cart, err := carts.Add(c.Request.Context(), sessionID(c), domain.CartItem{
			ProductID:      p.ID,
			Name:           p.Name,
			UnitPriceCents: p.PriceCents,
			Image:          p.Image,
			Quantity:       req.Quantity,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

func setCartQuantityHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "quantity is required")
			return
		}
		cart, err := carts.SetQuantity(c.Request.Context(), sessionID(c), c.Param("lineId"), req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

func removeCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Remove(c.Request.Context(), sessionID(c), c.Param("lineId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

func clearCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Clear(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// cartSummaryHandler prices the cart without tax. Tax shows up only in the
// checkout review.
func cartSummaryHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		summary := pricing.Summarize(cart, c.Query("promoCode"), pricing.ShippingMethod(c.Query("shipping")), false)
		c.JSON(http.StatusOK, gin.H{"cart": cart, "summary": toSummaryResponse(summary)})
	}
}
