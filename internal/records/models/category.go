package models

import (
	"time"
)

// Category defines the domain model for a customer category.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCategory is the payload for creating a Category.
type CreateCategory struct {
	Name string `json:"name"`
}

// CategoryUpdate represents the fields that can be updated for a Category.
type CategoryUpdate struct {
	ID   int64   `json:"id"`
	Name *string `json:"name,omitempty"`
}

// HasChanges reports whether the update carries at least one field.
func (u *CategoryUpdate) HasChanges() bool {
	return u.Name != nil
}
