package catalog

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifesource-backend/internal/models"
	"lifesource-backend/internal/timeutil"
)

// Mapper turns one raw store record into a fully populated entity. Mapping
// never fails: absent or oddly typed fields default instead of erroring, so
// one malformed document can't take down a whole listing.
type Mapper[T Entity] func(id string, raw bson.M) T

// MapProduct builds a Product from a raw field bag. Missing text fields
// become empty strings, missing sequences become empty slices, a missing
// isActive counts as true, and timestamps go through the normalizer.
func MapProduct(id string, raw bson.M) models.Product {
	return models.Product{
		ID:              id,
		Title:           asString(raw["title"]),
		Description:     asString(raw["description"]),
		LongDescription: asString(raw["longDescription"]),
		Slug:            asString(raw["slug"]),
		Category:        asString(raw["category"]),
		Price:           asString(raw["price"]),
		Features:        asStringSlice(raw["features"]),
		Images:          asStringSlice(raw["images"]),
		Specifications:  asStringMap(raw["specifications"]),
		IsActive:        asBool(raw["isActive"], true),
		CreatedAt:       timeutil.Normalize(raw["createdAt"]),
		UpdatedAt:       timeutil.Normalize(raw["updatedAt"]),
	}
}

// MapService builds a Service from a raw field bag, with the same
// defaulting rules as MapProduct.
func MapService(id string, raw bson.M) models.Service {
	return models.Service{
		ID:              id,
		Title:           asString(raw["title"]),
		Description:     asString(raw["description"]),
		LongDescription: asString(raw["longDescription"]),
		Slug:            asString(raw["slug"]),
		Category:        asString(raw["category"]),
		Price:           asString(raw["price"]),
		Features:        asStringSlice(raw["features"]),
		Image:           asString(raw["image"]),
		IsActive:        asBool(raw["isActive"], true),
		CreatedAt:       timeutil.Normalize(raw["createdAt"]),
		UpdatedAt:       timeutil.Normalize(raw["updatedAt"]),
	}
}

func asString(value interface{}) string {
	s, _ := value.(string)
	return s
}

func asBool(value interface{}, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		// Some hand-edited documents carry "true"/"false" strings.
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return fallback
	}
}

// asStringSlice tolerates the array being stored as a bare string, a BSON
// array, or a native string slice; anything else decodes as empty.
func asStringSlice(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		out := make([]string, 0, len(v))
		return append(out, v...)
	case primitive.A:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return []string{}
		}
		return []string{trimmed}
	default:
		return []string{}
	}
}

func asStringMap(value interface{}) map[string]string {
	out := make(map[string]string)

	switch v := value.(type) {
	case map[string]string:
		for key, item := range v {
			out[key] = item
		}
	case bson.M:
		for key, item := range v {
			if s, ok := item.(string); ok {
				out[key] = s
			}
		}
	case bson.D:
		for _, elem := range v {
			if s, ok := elem.Value.(string); ok {
				out[elem.Key] = s
			}
		}
	}

	return out
}
