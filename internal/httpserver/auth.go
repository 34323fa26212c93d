package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iotshop/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type meResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func registerAuthRoutes(g *gin.RouterGroup, authSvc authService) {
	g.POST("/auth/login", loginHandler(authSvc))
	g.POST("/auth/register", registerHandler(authSvc))
	g.POST("/auth/logout", logoutHandler(authSvc))
	g.GET("/auth/me", meHandler)
}

func loginHandler(authSvc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password are required")
			return
		}
		sess, err := authSvc.Login(c.Request.Context(), sessionID(c), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

func registerHandler(authSvc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		sess, err := authSvc.Register(c.Request.Context(), sessionID(c), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sess)
	}
}

func logoutHandler(authSvc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authSvc.Logout(sessionID(c))
		c.Status(http.StatusNoContent)
	}
}

// meHandler reflects the identity embedded in the client's token. The
// signature is deliberately not checked here: the payload is only used for
// display, and every privileged route re-verifies through requireAuth.
func meHandler(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	claims, err := auth.DecodeUnverified(token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": meResponse{
		ID:      claims.UserID,
		Name:    claims.Name,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}})
}
