package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"lifesource-backend/internal/catalog"
	"lifesource-backend/internal/models"
)

func newTestProductStore(t *testing.T) *catalog.Store[models.Product] {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return catalog.NewStore("products", catalog.NewMemoryBackend(), catalog.MapProduct)
}

func addTestProduct(t *testing.T, store *catalog.Store[models.Product], fields bson.M) models.Product {
	t.Helper()
	product, err := store.Add(context.Background(), fields)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	return product
}

func decodeEnvelope(t *testing.T, body []byte) Envelope {
	t.Helper()
	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, body)
	}
	return envelope
}

func TestGetProductBySlugReturnsActiveProduct(t *testing.T) {
	store := newTestProductStore(t)
	product := addTestProduct(t, store, bson.M{"title": "Advanced PCR Kit"})

	r := gin.New()
	r.GET("/products/:slug", GetProductBySlug(store))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/products/"+product.Slug, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	if envelope.ErrorCode != "NO" {
		t.Fatalf("expected errorCode NO, got %q", envelope.ErrorCode)
	}
}

func TestGetProductBySlugHidesInactiveProduct(t *testing.T) {
	store := newTestProductStore(t)
	product := addTestProduct(t, store, bson.M{"title": "Retired Kit", "isActive": false})

	r := gin.New()
	r.GET("/products/:slug", GetProductBySlug(store))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/products/"+product.Slug, nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", w.Code, w.Body.String())
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	if envelope.ErrorCode != "NOT_FOUND" {
		t.Fatalf("expected errorCode NOT_FOUND, got %q", envelope.ErrorCode)
	}
}

func TestGetPublicProductsFiltersByCategoryAndSearch(t *testing.T) {
	store := newTestProductStore(t)
	addTestProduct(t, store, bson.M{"title": "Advanced PCR Kit", "category": "molecular-biology"})
	addTestProduct(t, store, bson.M{"title": "Centrifuge", "category": "lab-equipment"})

	r := gin.New()
	r.GET("/products", GetPublicProducts(store))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/products?search=pcr", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var searchResp struct {
		Data []models.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &searchResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(searchResp.Data) != 1 || searchResp.Data[0].Title != "Advanced PCR Kit" {
		t.Fatalf("expected only the PCR kit, got %+v", searchResp.Data)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/products?category=lab-equipment", nil))
	var categoryResp struct {
		Data []models.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &categoryResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(categoryResp.Data) != 1 || categoryResp.Data[0].Title != "Centrifuge" {
		t.Fatalf("expected only the centrifuge, got %+v", categoryResp.Data)
	}
}

// failingBackend simulates an unreachable backing store.
type failingBackend struct{}

func (failingBackend) List(context.Context) ([]catalog.Record, error) {
	return nil, fmt.Errorf("store unreachable")
}
func (failingBackend) Query(context.Context, catalog.Query) ([]catalog.Record, error) {
	return nil, fmt.Errorf("store unreachable")
}
func (failingBackend) Get(context.Context, string) (catalog.Record, error) {
	return catalog.Record{}, fmt.Errorf("store unreachable")
}
func (failingBackend) Insert(context.Context, bson.M) (string, error) {
	return "", fmt.Errorf("store unreachable")
}
func (failingBackend) Update(context.Context, string, bson.M) error {
	return fmt.Errorf("store unreachable")
}
func (failingBackend) Delete(context.Context, string) error {
	return fmt.Errorf("store unreachable")
}

func TestGetPublicProductsDegradesToSampleCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := catalog.NewStore[models.Product]("products", failingBackend{}, catalog.MapProduct)

	r := gin.New()
	r.GET("/products", GetPublicProducts(store))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("public catalog must not fail outright, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	if envelope.Message != sampleCatalogMessage {
		t.Fatalf("expected the sample-catalog label, got %q", envelope.Message)
	}
	if envelope.Data == nil {
		t.Fatal("expected sample items in the degraded payload")
	}
}

func TestGetCategoriesServesFixedSets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/categories", GetCategories())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/categories", nil))

	var resp struct {
		Data struct {
			Products []string `json:"products"`
			Services []string `json:"services"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Products) == 0 || len(resp.Data.Services) == 0 {
		t.Fatalf("expected both category sets, got %+v", resp.Data)
	}
}
