package models

import "time"

// Product is a fully defaulted catalog entry. Instances come out of the
// catalog mapper; no field is ever an undecoded zero value the public site
// cannot render.
type Product struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	LongDescription string            `json:"longDescription"`
	Slug            string            `json:"slug"`
	Category        string            `json:"category"`
	Price           string            `json:"price"`
	Features        []string          `json:"features"`
	Images          []string          `json:"images"`
	Specifications  map[string]string `json:"specifications"`
	IsActive        bool              `json:"isActive"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func (p Product) EntityID() string       { return p.ID }
func (p Product) EntitySlug() string     { return p.Slug }
func (p Product) EntityCategory() string { return p.Category }
func (p Product) Active() bool           { return p.IsActive }
func (p Product) ModifiedAt() time.Time  { return p.UpdatedAt }

// SearchText feeds the free-text filter. Category is included for products
// so a query like "reagents" also finds everything filed under that category.
func (p Product) SearchText() string {
	return p.Title + "\n" + p.Description + "\n" + p.Category
}
