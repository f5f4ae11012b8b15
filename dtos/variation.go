package dtos

type CreateVariationRequest struct {
	Name  string `json:"name" binding:"omitempty,max=160"`
	Slug  string `json:"slug" binding:"omitempty,max=220"`
	SKU   string `json:"sku" binding:"required,max=100"`
	Color string `json:"color" binding:"omitempty,max=60"`
	Size  string `json:"size" binding:"omitempty,max=60"`
}

type UpdateVariationRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=160"`
	SKU   *string `json:"sku" binding:"omitempty,max=100"`
	Color *string `json:"color" binding:"omitempty,max=60"`
	Size  *string `json:"size" binding:"omitempty,max=60"`
}
