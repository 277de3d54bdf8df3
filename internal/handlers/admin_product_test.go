package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"lifesource-backend/internal/catalog"
	"lifesource-backend/internal/models"
)

func newAdminRouter(store *catalog.Store[models.Product]) *gin.Engine {
	r := gin.New()
	r.GET("/admin/api/products", GetAllProducts(store))
	r.GET("/admin/api/products/:id", GetProductByID(store))
	r.POST("/admin/api/products", CreateProduct(store))
	r.PUT("/admin/api/products/:id", UpdateProduct(store))
	r.PATCH("/admin/api/products/:id/toggle", ToggleProduct(store))
	r.DELETE("/admin/api/products/:id", DeleteProduct(store))
	return r
}

func TestCreateProductDerivesSlugAndDefaultsActive(t *testing.T) {
	store := newTestProductStore(t)
	r := newAdminRouter(store)

	body := `{"title":"Advanced PCR Kit!","category":"molecular-biology"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Slug != "advanced-pcr-kit" {
		t.Fatalf("expected derived slug, got %q", resp.Data.Slug)
	}
	if !resp.Data.IsActive {
		t.Fatal("expected isActive to default to true")
	}
	if resp.Data.ID == "" {
		t.Fatal("expected store-assigned id")
	}
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	store := newTestProductStore(t)
	r := newAdminRouter(store)

	body := `{"title":"Mystery Box","category":"mystery"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	if envelope.ErrorCode != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %q", envelope.ErrorCode)
	}
}

func TestCreateProductRejectsSlugCollision(t *testing.T) {
	store := newTestProductStore(t)
	addTestProduct(t, store, bson.M{"title": "Advanced PCR Kit"})
	r := newAdminRouter(store)

	body := `{"title":"Advanced PCR Kit","category":"molecular-biology"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for slug collision, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestUpdateProductRequiresFields(t *testing.T) {
	store := newTestProductStore(t)
	product := addTestProduct(t, store, bson.M{"title": "Incubator"})
	r := newAdminRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/api/products/"+product.ID, strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty update, got %d", w.Code)
	}
}

func TestUpdateProductAppliesPartialFields(t *testing.T) {
	store := newTestProductStore(t)
	product := addTestProduct(t, store, bson.M{"title": "Incubator", "price": "$900", "category": "lab-equipment"})
	r := newAdminRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/admin/api/products/"+product.ID, strings.NewReader(`{"price":"$850"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Data models.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Price != "$850" || resp.Data.Title != "Incubator" {
		t.Fatalf("unexpected update result: %+v", resp.Data)
	}
}

func TestToggleProductFlipsVisibility(t *testing.T) {
	store := newTestProductStore(t)
	product := addTestProduct(t, store, bson.M{"title": "Microscope"})
	r := newAdminRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("PATCH", "/admin/api/products/"+product.ID+"/toggle", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data models.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.IsActive {
		t.Fatal("expected toggle to deactivate the product")
	}
}

func TestDeleteProductThenMissing(t *testing.T) {
	store := newTestProductStore(t)
	product := addTestProduct(t, store, bson.M{"title": "Shaker"})
	r := newAdminRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/admin/api/products/"+product.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/admin/api/products/"+product.ID, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for repeated delete, got %d", w.Code)
	}
}

func TestGetProductByID(t *testing.T) {
	store := newTestProductStore(t)
	product := addTestProduct(t, store, bson.M{"title": "Incubator"})
	r := newAdminRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/products/"+product.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Title != "Incubator" {
		t.Fatalf("expected Incubator, got %q", resp.Data.Title)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/products/no-such-id", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", w.Code)
	}
}

func TestGetAllProductsRejectsBadPageSize(t *testing.T) {
	store := newTestProductStore(t)
	r := newAdminRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/products?pageSize=zero", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetAllProductsPaginates(t *testing.T) {
	store := newTestProductStore(t)
	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		addTestProduct(t, store, bson.M{"title": title})
	}
	r := newAdminRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin/api/products?pageSize=2", nil))

	var resp struct {
		Data catalog.Page[models.Product] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Items) != 2 || !resp.Data.HasMore || resp.Data.NextCursor == "" {
		t.Fatalf("unexpected first page: %+v", resp.Data)
	}
}
