package dto

import "time"

// CreateCategoryRequest body for POST /api/categories.
type CreateCategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	Color     string `json:"color,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
	SortOrder int    `json:"sort_order"`
}

// UpdateCategoryRequest body for PUT /api/categories/{id}.
type UpdateCategoryRequest struct {
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// CategoryResponse representation of a category.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	ParentID  string    `json:"parent_id,omitempty"`
	SortOrder int       `json:"sort_order"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
