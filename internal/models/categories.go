package models

// Category slugs are a fixed set maintained alongside the site content, not
// a managed collection. Products and services reference them by slug.
var (
	ProductCategories = []string{
		"lab-equipment",
		"diagnostics",
		"reagents",
		"consumables",
		"molecular-biology",
	}

	ServiceCategories = []string{
		"installation",
		"maintenance",
		"calibration",
		"training",
		"consulting",
	}
)

func IsProductCategory(slug string) bool { return containsSlug(ProductCategories, slug) }
func IsServiceCategory(slug string) bool { return containsSlug(ServiceCategories, slug) }

func containsSlug(set []string, slug string) bool {
	for _, s := range set {
		if s == slug {
			return true
		}
	}
	return false
}
