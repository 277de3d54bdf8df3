package catalog

import (
	"regexp"
	"strings"
)

var slugSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// MakeSlug derives a URL-safe slug from a title: lower-cased, runs of
// non-alphanumeric characters collapsed to single hyphens, leading and
// trailing hyphens stripped.
func MakeSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugSanitizer.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
