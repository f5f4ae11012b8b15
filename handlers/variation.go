package handlers

import (
	"net/http"

	"quesec-backend/dtos"
	"quesec-backend/models"
	"quesec-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VariationHandler struct {
	DB *gorm.DB
}

func (h *VariationHandler) ListVariations(c *gin.Context) {
	productID := c.Param("id")
	if err := h.DB.First(&models.Product{}, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var variations []models.Variation
	if err := h.DB.Preload("Images", models.GalleryOrder).
		Where("product_id = ?", productID).Order("name ASC").
		Find(&variations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variations"})
		return
	}
	c.JSON(http.StatusOK, variations)
}

func (h *VariationHandler) CreateVariation(c *gin.Context) {
	productID := c.Param("id")
	var product models.Product
	if err := h.DB.First(&product, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req dtos.CreateVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	variation := models.Variation{
		ProductID: product.ID,
		Name:      req.Name,
		Slug:      req.Slug,
		SKU:       req.SKU,
		Color:     req.Color,
		Size:      req.Size,
	}

	if err := h.DB.Create(&variation).Error; err != nil {
		if models.IsUniqueViolation(err) && req.Slug == "" {
			// Slug race within the product scope: one retry with a fresh suffix.
			variation.Slug = ""
			err = h.DB.Create(&variation).Error
		}
		if err != nil {
			writeVariationSaveError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, variation)
}

func (h *VariationHandler) UpdateVariation(c *gin.Context) {
	id := c.Param("id")
	var variation models.Variation

	if err := h.DB.Where("id = ?", id).First(&variation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variation not found"})
		return
	}

	var req dtos.UpdateVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	// Renames keep the existing slug.
	if req.Name != nil {
		variation.Name = *req.Name
	}
	if req.SKU != nil {
		variation.SKU = *req.SKU
	}
	if req.Color != nil {
		variation.Color = *req.Color
	}
	if req.Size != nil {
		variation.Size = *req.Size
	}

	if err := h.DB.Save(&variation).Error; err != nil {
		writeVariationSaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, variation)
}

func (h *VariationHandler) DeleteVariation(c *gin.Context) {
	id := c.Param("id")
	var variation models.Variation

	if err := h.DB.First(&variation, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variation not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.VariationImage{}, "variation_id = ?", variation.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Variation{}, "id = ?", variation.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete variation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Variation deleted successfully"})
}

func (h *VariationHandler) AddVariationImage(c *gin.Context) {
	id := c.Param("id")
	var variation models.Variation
	if err := h.DB.First(&variation, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variation not found"})
		return
	}

	var req dtos.GalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url is required"})
		return
	}

	image := models.VariationImage{
		VariationID: variation.ID,
		ImageURL:    req.ImageURL,
		AltText:     req.AltText,
		SortOrder:   req.SortOrder,
	}
	if err := h.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *VariationHandler) DeleteVariationImage(c *gin.Context) {
	var image models.VariationImage
	if err := h.DB.Where("id = ? AND variation_id = ?", c.Param("imageID"), c.Param("id")).
		First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if err := h.DB.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

func writeVariationSaveError(c *gin.Context, err error) {
	if models.IsUniqueViolation(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "Variation slug or SKU already exists"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save variation"})
}
