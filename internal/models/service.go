package models

import "time"

// Service mirrors Product but carries a single image and no specification
// table.
type Service struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription"`
	Slug            string    `json:"slug"`
	Category        string    `json:"category"`
	Price           string    `json:"price"`
	Features        []string  `json:"features"`
	Image           string    `json:"image"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (s Service) EntityID() string       { return s.ID }
func (s Service) EntitySlug() string     { return s.Slug }
func (s Service) EntityCategory() string { return s.Category }
func (s Service) Active() bool           { return s.IsActive }
func (s Service) ModifiedAt() time.Time  { return s.UpdatedAt }

func (s Service) SearchText() string {
	return s.Title + "\n" + s.Description
}
