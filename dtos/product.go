package dtos

import "github.com/google/uuid"

type CreateProductRequest struct {
	Name             string    `json:"name" binding:"required,max=180"`
	Slug             string    `json:"slug" binding:"omitempty,max=220"`
	CategoryID       uuid.UUID `json:"category_id" binding:"required"`
	Brand            string    `json:"brand" binding:"omitempty,max=120"`
	SKU              string    `json:"sku" binding:"required,max=80"`
	Price            float64   `json:"price" binding:"gte=0"`
	MRP              *float64  `json:"mrp" binding:"omitempty,gte=0"`
	Stock            int       `json:"stock" binding:"gte=0"`
	ShortDescription string    `json:"short_description" binding:"omitempty,max=240"`
	Description      string    `json:"description"`
	CoverImage       string    `json:"cover_image"`
	IsActive         *bool     `json:"is_active"`
	IsFeatured       bool      `json:"is_featured"`
	Color            string    `json:"color" binding:"omitempty,max=60"`
	Size             string    `json:"size" binding:"omitempty,max=60"`
}

type UpdateProductRequest struct {
	Name             *string    `json:"name" binding:"omitempty,max=180"`
	CategoryID       *uuid.UUID `json:"category_id"`
	Brand            *string    `json:"brand" binding:"omitempty,max=120"`
	SKU              *string    `json:"sku" binding:"omitempty,max=80"`
	Price            *float64   `json:"price" binding:"omitempty,gte=0"`
	// A nil MRP means "leave unchanged", so null cannot clear the field;
	// ClearMRP is the explicit way back to no-MRP.
	MRP              *float64   `json:"mrp" binding:"omitempty,gte=0"`
	ClearMRP         bool       `json:"clear_mrp"`
	Stock            *int       `json:"stock" binding:"omitempty,gte=0"`
	ShortDescription *string    `json:"short_description" binding:"omitempty,max=240"`
	Description      *string    `json:"description"`
	CoverImage       *string    `json:"cover_image"`
	IsActive         *bool      `json:"is_active"`
	IsFeatured       *bool      `json:"is_featured"`
	Color            *string    `json:"color" binding:"omitempty,max=60"`
	Size             *string    `json:"size" binding:"omitempty,max=60"`
}

// GalleryImageRequest covers product and variation gallery rows alike. The
// image asset itself lives wherever MEDIA_BASE_URL points; only the
// reference is stored.
type GalleryImageRequest struct {
	ImageURL  string `json:"image_url" binding:"required"`
	AltText   string `json:"alt_text" binding:"omitempty,max=160"`
	SortOrder int    `json:"sort_order" binding:"gte=0"`
}
