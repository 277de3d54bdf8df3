package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"lifesource-backend/internal/catalog"
	"lifesource-backend/internal/models"
)

type ServiceCreateRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	Slug            string   `json:"slug"`
	Category        string   `json:"category" binding:"required"`
	Price           string   `json:"price"`
	Features        []string `json:"features"`
	Image           string   `json:"image"`
	IsActive        *bool    `json:"isActive"`
}

type ServiceUpdateRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	LongDescription *string   `json:"longDescription"`
	Slug            *string   `json:"slug"`
	Category        *string   `json:"category"`
	Price           *string   `json:"price"`
	Features        *[]string `json:"features"`
	Image           *string   `json:"image"`
	IsActive        *bool     `json:"isActive"`
}

// GET /admin/api/services
func GetAllServices(store *catalog.Store[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/services"

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

// GET /admin/api/services/:id
func GetServiceByID(store *catalog.Store[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/services/:id"

		service, err := store.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, service)
	}
}

// POST /admin/api/services
func CreateService(store *catalog.Store[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/services"

		var req ServiceCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "invalid body")
			return
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			respondValidationError(c, "title required")
			return
		}
		if !models.IsServiceCategory(req.Category) {
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
			"image":           strings.TrimSpace(req.Image),
		}
		if req.IsActive != nil {
			fields["isActive"] = *req.IsActive
		}

		service, err := store.Add(c.Request.Context(), fields)
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondCreated(c, service)
	}
}

// PUT /admin/api/services/:id
func UpdateService(store *catalog.Store[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/services/:id"

		var req ServiceUpdateRequest
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
			if !models.IsServiceCategory(*req.Category) {
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
		if req.Image != nil {
			fields["image"] = strings.TrimSpace(*req.Image)
		}
		if req.IsActive != nil {
			fields["isActive"] = *req.IsActive
		}

		if len(fields) == 0 {
			respondValidationError(c, "no fields to update")
			return
		}

		service, err := store.Update(c.Request.Context(), c.Param("id"), fields)
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, service)
	}
}

// PATCH /admin/api/services/:id/toggle
func ToggleService(store *catalog.Store[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/services/:id/toggle"

		service, err := store.ToggleActiveStatus(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, service)
	}
}

// DELETE /admin/api/services/:id
func DeleteService(store *catalog.Store[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/services/:id"

		id := c.Param("id")
		if err := store.Delete(c.Request.Context(), id); err != nil {
			respondCatalogError(c, route, err)
			return
		}

		respondOK(c, gin.H{"id": id})
	}
}
