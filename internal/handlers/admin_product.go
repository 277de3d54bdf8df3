package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"lifesource-backend/internal/catalog"
	"lifesource-backend/internal/models"
)

type ProductCreateRequest struct {
	Title           string            `json:"title" binding:"required"`
	Description     string            `json:"description"`
	LongDescription string            `json:"longDescription"`
	Slug            string            `json:"slug"`
	Category        string            `json:"category" binding:"required"`
	Price           string            `json:"price"`
	Features        []string          `json:"features"`
	Images          []string          `json:"images"`
	Specifications  map[string]string `json:"specifications"`
	IsActive        *bool             `json:"isActive"`
}

type ProductUpdateRequest struct {
	Title           *string            `json:"title"`
	Description     *string            `json:"description"`
	LongDescription *string            `json:"longDescription"`
	Slug            *string            `json:"slug"`
	Category        *string            `json:"category"`
	Price           *string            `json:"price"`
	Features        *[]string          `json:"features"`
	Images          *[]string          `json:"images"`
	Specifications  *map[string]string `json:"specifications"`
	IsActive        *bool              `json:"isActive"`
}

/*
GET /admin/api/products
- cursor pagination (?pageSize=, ?cursor=)
- ?category=, ?isActive=, ?search= filters
Reads the backing store directly so the dashboard always sees fresh rows.
*/
func GetAllProducts(store *catalog.Store[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"

		pageSize, err := parsePageSize(c.Query("pageSize"))
		if err != nil {
			respondValidationError(c, err.Error())
			return
		}

		filters := catalog.Filters{
			Category: strings.TrimSpace(c.Query("category")),
			Search:   strings.TrimSpace(c.Query("search")),
		}
		if raw := strings.TrimSpace(c.Query("isActive")); raw != "" {
			active := strings.EqualFold(raw, "true")
			filters.Active = &active
		}

		page, err := store.GetAll(c.Request.Context(), pageSize, c.Query("cursor"), filters)
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, page)
	}
}

// GET /admin/api/products/:id
func GetProductByID(store *catalog.Store[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products/:id"

		product, err := store.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, product)
	}
}

// POST /admin/api/products
func CreateProduct(store *catalog.Store[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "invalid body")
			return
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			respondValidationError(c, "title required")
			return
		}
		if !models.IsProductCategory(req.Category) {
			respondValidationError(c, "unknown category: "+req.Category)
			return
		}

		fields := bson.M{
			"title":           title,
			"description":     strings.TrimSpace(req.Description),
			"longDescription": strings.TrimSpace(req.LongDescription),
			"slug":            catalog.MakeSlug(req.Slug),
			"category":        req.Category,
			"price":           strings.TrimSpace(req.Price),
			"features":        emptyIfNil(req.Features),
			"images":          emptyIfNil(req.Images),
			"specifications":  emptyMapIfNil(req.Specifications),
		}
		if req.IsActive != nil {
			fields["isActive"] = *req.IsActive
		}

		product, err := store.Add(c.Request.Context(), fields)
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondCreated(c, product)
	}
}

// PUT /admin/api/products/:id
func UpdateProduct(store *catalog.Store[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "invalid body")
			return
		}

		fields := bson.M{}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				respondValidationError(c, "title cannot be empty")
				return
			}
			fields["title"] = title
		}
		if req.Description != nil {
			fields["description"] = strings.TrimSpace(*req.Description)
		}
		if req.LongDescription != nil {
			fields["longDescription"] = strings.TrimSpace(*req.LongDescription)
		}
		if req.Slug != nil {
			slug := catalog.MakeSlug(*req.Slug)
			if slug == "" {
				respondValidationError(c, "slug cannot be empty")
				return
			}
			fields["slug"] = slug
		}
		if req.Category != nil {
			if !models.IsProductCategory(*req.Category) {
				respondValidationError(c, "unknown category: "+*req.Category)
				return
			}
			fields["category"] = *req.Category
		}
		if req.Price != nil {
			fields["price"] = strings.TrimSpace(*req.Price)
		}
		if req.Features != nil {
			fields["features"] = emptyIfNil(*req.Features)
		}
		if req.Images != nil {
			fields["images"] = emptyIfNil(*req.Images)
		}
		if req.Specifications != nil {
			fields["specifications"] = emptyMapIfNil(*req.Specifications)
		}
		if req.IsActive != nil {
			fields["isActive"] = *req.IsActive
		}

		if len(fields) == 0 {
			respondValidationError(c, "no fields to update")
			return
		}

		product, err := store.Update(c.Request.Context(), c.Param("id"), fields)
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, product)
	}
}

// PATCH /admin/api/products/:id/toggle
func ToggleProduct(store *catalog.Store[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/products/:id/toggle"

		product, err := store.ToggleActiveStatus(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, product)
	}
}

// DELETE /admin/api/products/:id
func DeleteProduct(store *catalog.Store[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"

		id := c.Param("id")
		if err := store.Delete(c.Request.Context(), id); err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, gin.H{"id": id})
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptyMapIfNil(values map[string]string) map[string]string {
	if values == nil {
		return map[string]string{}
	}
	return values
}
