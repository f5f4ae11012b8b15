package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quesec-backend/dtos"
	"quesec-backend/models"
	"quesec-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

// GetProductsPaginated is the admin catalog listing: no is_active gate, free
// paging, search over name/sku/brand.
func (h *ProductHandler) GetProductsPaginated(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var products []models.Product
	var total int64

	query := h.DB.Model(&models.Product{})

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?) OR LOWER(brand) LIKE LOWER(?)", like, like, like)
	}

	query.Count(&total)
	query.Preload("Category").Preload("Images", models.GalleryOrder).
		Order("created_at DESC, id ASC").Offset(offset).Limit(limit).Find(&products)

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Preload("Category").Preload("Images", models.GalleryOrder).
		Preload("Variations", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Variations.Images", models.GalleryOrder).
		Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dtos.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if err := h.DB.First(&models.Category{}, "id = ?", req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	product := models.Product{
		Name:             req.Name,
		Slug:             req.Slug,
		CategoryID:       req.CategoryID,
		Brand:            req.Brand,
		SKU:              req.SKU,
		Price:            req.Price,
		MRP:              req.MRP,
		Stock:            req.Stock,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		CoverImage:       req.CoverImage,
		IsActive:         true,
		IsFeatured:       req.IsFeatured,
		Color:            req.Color,
		Size:             req.Size,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&product).Error; err != nil {
		// The unique indexes are the authority on slug/SKU uniqueness. When
		// the slug was auto-derived, a lost race gets one retry with a fresh
		// suffix before surfacing as a conflict.
		if models.IsUniqueViolation(err) && req.Slug == "" {
			product.Slug = ""
			err = h.DB.Create(&product).Error
		}
		if err != nil {
			writeProductSaveError(c, err)
			return
		}
	}

	h.DB.Preload("Category").Preload("Images", models.GalleryOrder).First(&product, "id = ?", product.ID)
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req dtos.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.CategoryID != nil {
		if err := h.DB.First(&models.Category{}, "id = ?", *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		product.CategoryID = *req.CategoryID
	}

	// Renames keep the existing slug.
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ClearMRP {
		product.MRP = nil
	} else if req.MRP != nil {
		product.MRP = req.MRP
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.ShortDescription != nil {
		product.ShortDescription = *req.ShortDescription
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CoverImage != nil {
		product.CoverImage = *req.CoverImage
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.Color != nil {
		product.Color = *req.Color
	}
	if req.Size != nil {
		product.Size = *req.Size
	}

	if err := h.DB.Save(&product).Error; err != nil {
		writeProductSaveError(c, err)
		return
	}

	h.DB.Preload("Category").Preload("Images", models.GalleryOrder).First(&product, "id = ?", product.ID)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product together with its gallery, variations and
// variation galleries in one transaction.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if err := h.DB.Preload("Variations").First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, v := range product.Variations {
			if err := tx.Delete(&models.VariationImage{}, "variation_id = ?", v.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.Variation{}, "product_id = ?", product.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ProductImage{}, "product_id = ?", product.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", product.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// DuplicateProduct clones a product with its gallery into a new identity.
func (h *ProductHandler) DuplicateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	dup, err := models.DuplicateProduct(h.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if models.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Duplicate slug or SKU"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to duplicate product"})
		return
	}

	h.DB.Preload("Category").Preload("Images", models.GalleryOrder).First(dup, "id = ?", dup.ID)
	c.JSON(http.StatusCreated, dup)
}

func writeProductSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNegativePrice),
		errors.Is(err, models.ErrNegativeMRP),
		errors.Is(err, models.ErrNegativeStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case models.IsUniqueViolation(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Product slug or SKU already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product"})
	}
}
