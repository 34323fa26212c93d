package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"iotshop/internal/domain"
	"iotshop/internal/service/auth"
	"iotshop/internal/service/builder"
	cartsvc "iotshop/internal/service/cart"
	"iotshop/internal/service/checkout"
)

// respondError maps service errors onto HTTP statuses. Field-level
// validation failures carry their violations so clients can render them
// next to the inputs.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrSessionExpired),
		errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, cartsvc.ErrInvalidQuantity),
		errors.Is(err, builder.ErrInvalidQuantity),
		errors.Is(err, builder.ErrNoComponents),
		errors.Is(err, builder.ErrNoBlueprint),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNotStarted),
		errors.Is(err, checkout.ErrStepOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
