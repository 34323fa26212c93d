package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iotshop/internal/domain"
)

type addComponentRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type componentQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func registerBuilderRoutes(g *gin.RouterGroup, deps Deps) {
	b := deps.Builder

	g.GET("/builder", getDraftHandler(b))
	g.POST("/builder/components", addComponentHandler(b, deps.Catalog))
	g.PATCH("/builder/components/:id", setComponentQuantityHandler(b))
	g.DELETE("/builder/components/:id", removeComponentHandler(b))
	g.PUT("/builder/requirements", setRequirementsHandler(b))
	g.POST("/builder/blueprint", generateBlueprintHandler(b))
	g.POST("/builder/back", builderBackHandler(b))

	// Saving and submitting tie the project to an account.
	g.POST("/builder/save", requireAuth(deps.Auth), saveProjectHandler(b))
	g.POST("/builder/submit", requireAuth(deps.Auth), submitProjectHandler(b))
	g.GET("/projects", requireAuth(deps.Auth), listProjectsHandler(b))
	g.GET("/projects/:id", requireAuth(deps.Auth), getProjectHandler(b))
}

func getDraftHandler(b builderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := b.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": d})
	}
}

func addComponentHandler(b builderService, catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addComponentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "productId is required")
			return
		}
		p, err := catalog.Product(c.Request.Context(), req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		d, err := b.AddComponent(c.Request.Context(), sessionID(c), *p)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": d})
	}
}

func setComponentQuantityHandler(b builderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req componentQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "quantity is required")
			return
		}
		d, err := b.SetComponentQuantity(c.Request.Context(), sessionID(c), c.Param("id"), req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": d})
	}
}

func removeComponentHandler(b builderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := b.RemoveComponent(c.Request.Context(), sessionID(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": d})
	}
}

func setRequirementsHandler(b builderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.ProjectRequirements
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		d, err := b.SetRequirements(c.Request.Context(), sessionID(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": d})
	}
}

func generateBlueprintHandler(b builderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := b.Generate(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": d})
	}
}

func builderBackHandler(b builderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := b.Back(c.Request.Context(), sessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": d})
	}
}

func saveProjectHandler(b builderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := currentClaims(c)
		p, err := b.Save(c.Request.Context(), sessionID(c), claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"project": p})
	}
}

func submitProjectHandler(b builderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := currentClaims(c)
		p, err := b.Submit(c.Request.Context(), sessionID(c), claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"project": p})
	}
}

func getProjectHandler(b builderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := currentClaims(c)
		p, err := b.Project(c.Request.Context(), claims.UserID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"project": p})
	}
}

func listProjectsHandler(b builderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := currentClaims(c)
		projects, err := b.Projects(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		if projects == nil {
			projects = []domain.CustomProject{}
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects})
	}
}
