package handlers

import (
	"errors"
	"net/http"

	"quesec-backend/dtos"
	"quesec-backend/models"
	"quesec-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	query := h.DB.Preload("Parent").Order("name ASC")
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id := c.Param("id")
	var category models.Category

	if err := h.DB.Preload("Parent").Preload("Children").Preload("Products").
		Where("id = ?", id).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dtos.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	category := models.Category{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
		IsActive: true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&category).Error; err != nil {
		if models.IsUniqueViolation(err) && req.Slug == "" {
			// Slug race: one retry with a fresh suffix. A name clash fails
			// again and surfaces as the conflict it is.
			category.Slug = ""
			err = h.DB.Create(&category).Error
		}
		if err != nil {
			writeCategorySaveError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")
	var category models.Category

	if err := h.DB.Where("id = ?", id).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var req dtos.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	// Renames keep the existing slug; it is an established URL by now.
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.ParentID != nil {
		category.ParentID = req.ParentID
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&category).Error; err != nil {
		writeCategorySaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category and its whole subtree, but only when no
// product references the category or any of its descendants.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	var category models.Category

	if err := h.DB.Where("id = ?", id).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	subtree, err := h.collectSubtree(category.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category dependencies"})
		return
	}

	var productCount int64
	if err := h.DB.Model(&models.Product{}).Where("category_id IN ?", subtree).
		Count(&productCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category dependencies"})
		return
	}
	if productCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "Cannot delete category with associated products",
			"message":       "Please reassign or delete the associated products first",
			"product_count": productCount,
		})
		return
	}

	// Children first so the parent foreign key never dangles.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for i := len(subtree) - 1; i >= 0; i-- {
			if err := tx.Delete(&models.Category{}, "id = ?", subtree[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// collectSubtree returns the category id and all descendant ids, parents
// before children. The visited set keeps the walk finite even when the
// stored data already contains a parent cycle.
func (h *CategoryHandler) collectSubtree(rootID uuid.UUID) ([]uuid.UUID, error) {
	subtree := []uuid.UUID{rootID}
	frontier := []uuid.UUID{rootID}
	visited := map[uuid.UUID]bool{rootID: true}

	for len(frontier) > 0 {
		var children []models.Category
		if err := h.DB.Select("id").Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			subtree = append(subtree, child.ID)
			frontier = append(frontier, child.ID)
		}
	}
	return subtree, nil
}

func writeCategorySaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrCategoryCycle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category cannot be its own ancestor"})
	case models.IsUniqueViolation(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Category name or slug already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save category"})
	}
}
