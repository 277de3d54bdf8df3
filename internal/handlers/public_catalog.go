package handlers

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"lifesource-backend/internal/catalog"
	"lifesource-backend/internal/models"
)

/*
GET /products
- ?category= filters one category
- ?search= free-text match
- otherwise all active products
Degrades to the labeled sample catalog when the store is unreachable: the
public site never renders a blank page.
*/
func GetPublicProducts(store *catalog.Store[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"

		ctx := c.Request.Context()

		var (
			products []models.Product
			err      error
		)

		switch {
		case strings.TrimSpace(c.Query("category")) != "":
			products, err = store.GetByCategory(ctx, strings.TrimSpace(c.Query("category")))
		case strings.TrimSpace(c.Query("search")) != "":
			products, err = store.Search(ctx, c.Query("search"))
		default:
			products, err = store.GetActive(ctx)
		}

		if err != nil {
			log.Printf("[%s] falling back to sample catalog: %v", route, err)
			respondData(c, 200, sampleCatalogMessage, sampleProducts)
			return
		}

		log.Printf("[%s] returning %d products", route, len(products))
		respondOK(c, products)
	}
}

/*
GET /products/:slug
Active products only; an inactive product's slug is a 404.
*/
func GetProductBySlug(store *catalog.Store[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:slug"

		slug := strings.TrimSpace(c.Param("slug"))
		if slug == "" {
			respondValidationError(c, "slug required")
			return
		}

		product, err := store.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, product)
	}
}

// GET /services mirrors GET /products for the service catalog.
func GetPublicServices(store *catalog.Store[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /services"

		ctx := c.Request.Context()

		var (
			services []models.Service
			err      error
		)

		switch {
		case strings.TrimSpace(c.Query("category")) != "":
			services, err = store.GetByCategory(ctx, strings.TrimSpace(c.Query("category")))
		case strings.TrimSpace(c.Query("search")) != "":
			services, err = store.Search(ctx, c.Query("search"))
		default:
			services, err = store.GetActive(ctx)
		}

		if err != nil {
			log.Printf("[%s] falling back to sample catalog: %v", route, err)
			respondData(c, 200, sampleCatalogMessage, sampleServices)
			return
		}

		log.Printf("[%s] returning %d services", route, len(services))
		respondOK(c, services)
	}
}

func GetServiceBySlug(store *catalog.Store[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /services/:slug"

		slug := strings.TrimSpace(c.Param("slug"))
		if slug == "" {
			respondValidationError(c, "slug required")
			return
		}

		service, err := store.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, service)
	}
}

// GET /categories serves the fixed category sets the site navigation is
// built from.
func GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondOK(c, gin.H{
			"products": models.ProductCategories,
			"services": models.ServiceCategories,
		})
	}
}
