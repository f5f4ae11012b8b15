package dtos

import "github.com/google/uuid"

type CreateCategoryRequest struct {
	Name     string     `json:"name" binding:"required,max=120"`
	Slug     string     `json:"slug" binding:"omitempty,max=160"`
	ParentID *uuid.UUID `json:"parent_id"`
	IsActive *bool      `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name     *string    `json:"name" binding:"omitempty,max=120"`
	ParentID *uuid.UUID `json:"parent_id"`
	IsActive *bool      `json:"is_active"`
}
