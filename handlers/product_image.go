package handlers

import (
	"net/http"

	"quesec-backend/dtos"
	"quesec-backend/models"

	"github.com/gin-gonic/gin"
)

// Product gallery management. Rows carry an image reference plus alt text and
// sort order; the asset itself lives behind MEDIA_BASE_URL and is not this
// service's concern.

func (h *ProductHandler) ListProductImages(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.First(&models.Product{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var images []models.ProductImage
	if err := models.GalleryOrder(h.DB.Where("product_id = ?", id)).Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch images"})
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *ProductHandler) AddProductImage(c *gin.Context) {
	id := c.Param("id")
	var product models.Product
	if err := h.DB.First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req dtos.GalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url is required"})
		return
	}

	image := models.ProductImage{
		ProductID: product.ID,
		ImageURL:  req.ImageURL,
		AltText:   req.AltText,
		SortOrder: req.SortOrder,
	}
	if err := h.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *ProductHandler) UpdateProductImage(c *gin.Context) {
	var image models.ProductImage
	if err := h.DB.Where("id = ? AND product_id = ?", c.Param("imageID"), c.Param("id")).
		First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	var req dtos.GalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url is required"})
		return
	}

	image.ImageURL = req.ImageURL
	image.AltText = req.AltText
	image.SortOrder = req.SortOrder
	if err := h.DB.Save(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusOK, image)
}

func (h *ProductHandler) DeleteProductImage(c *gin.Context) {
	var image models.ProductImage
	if err := h.DB.Where("id = ? AND product_id = ?", c.Param("imageID"), c.Param("id")).
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
