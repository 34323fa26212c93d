package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iotshop/internal/domain"
	productrepo "iotshop/internal/repository/product"
)

func registerCatalogRoutes(g *gin.RouterGroup, catalog catalogService, authSvc authService) {
	g.GET("/products", listProductsHandler(catalog))
	g.GET("/products/featured", featuredProductsHandler(catalog))
	g.GET("/products/:id", getProductHandler(catalog))
	g.GET("/categories", listCategoriesHandler(catalog))
	g.GET("/categories/:slug", getCategoryHandler(catalog))

	// Catalog management is restricted to admin accounts.
	g.POST("/products", requireAuth(authSvc), requireAdmin(), upsertProductHandler(catalog))
}

func upsertProductHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p domain.Product
		if err := c.ShouldBindJSON(&p); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		if p.Key == "" || p.Name == "" || p.PriceCents <= 0 {
			badRequest(c, "key, name and a positive price are required")
			return
		}
		saved, err := catalog.UpsertProduct(c.Request.Context(), p)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"product": saved})
	}
}

func listProductsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := productrepo.Filter{
			Category:    c.Query("category"),
			Subcategory: c.Query("subcategory"),
			Search:      c.Query("search"),
			Featured:    c.Query("featured") == "true",
		}
		products, err := catalog.Products(c.Request.Context(), f)
		if err != nil {
			respondError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func featuredProductsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.Featured(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := catalog.Product(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func listCategoriesHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalog.Categories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func getCategoryHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := catalog.Category(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": cat})
	}
}
