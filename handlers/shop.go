package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"quesec-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// shopPageSize is the fixed storefront page size.
const shopPageSize = 12

// relatedLimit caps the related-products strip on the detail page.
const relatedLimit = 8

type ShopHandler struct {
	DB *gorm.DB
}

// ListProducts is the storefront catalog listing: active products filtered by
// free text, category slug, brand and price range, sorted and paginated.
// Out-of-range page numbers clamp to the nearest valid page instead of erroring.
func (h *ShopHandler) ListProducts(c *gin.Context) {
	q := c.Query("q")
	category := c.Query("category")
	brand := c.Query("brand")
	minStr := c.Query("min")
	maxStr := c.Query("max")
	sort := c.Query("sort")

	query := h.DB.Model(&models.Product{}).Where("is_active = ?", true)

	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(short_description) LIKE ?",
			like, like, like,
		)
	}
	if category != "" {
		query = query.Where("category_id IN (SELECT id FROM categories WHERE slug = ?)", category)
	}
	if brand != "" {
		query = query.Where("LOWER(brand) = LOWER(?)", brand)
	}
	if v, err := strconv.ParseFloat(minStr, 64); err == nil {
		query = query.Where("price >= ?", v)
	}
	if v, err := strconv.ParseFloat(maxStr, 64); err == nil {
		query = query.Where("price <= ?", v)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	switch sort {
	case "price_asc":
		query = query.Order("price ASC, id ASC")
	case "price_desc":
		query = query.Order("price DESC, id ASC")
	case "featured":
		query = query.Order("is_featured DESC, created_at DESC, id ASC")
	default:
		query = query.Order("created_at DESC, id ASC")
	}

	pages := int(math.Ceil(float64(total) / float64(shopPageSize)))
	if pages < 1 {
		pages = 1
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Images", models.GalleryOrder).
		Offset((page - 1) * shopPageSize).Limit(shopPageSize).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	// Global price range over all active products, ignoring the current
	// filters - the storefront uses it to render the range control.
	var priceRange struct {
		MinPrice *float64 `json:"min_price"`
		MaxPrice *float64 `json:"max_price"`
	}
	h.DB.Model(&models.Product{}).Where("is_active = ?", true).
		Select("MIN(price) AS min_price, MAX(price) AS max_price").
		Scan(&priceRange)

	var categories []models.Category
	h.DB.Preload("Parent").Where("is_active = ?", true).Order("name ASC").Find(&categories)

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"total":      total,
		"page":       page,
		"pages":      pages,
		"page_size":  shopPageSize,
		"price_range": gin.H{
			"min_price": priceRange.MinPrice,
			"max_price": priceRange.MaxPrice,
		},
		"categories": categories,
		"filters": gin.H{
			"q":        q,
			"category": category,
			"brand":    brand,
			"min":      minStr,
			"max":      maxStr,
			"sort":     sort,
		},
	})
}

// GetProductDetail resolves a product by slug plus an optional variation slug.
// Without a variation slug the first variation ordered by name is selected;
// a supplied slug must belong to this product or the request 404s.
func (h *ShopHandler) GetProductDetail(c *gin.Context) {
	slug := c.Param("slug")
	variationSlug := c.Param("variation")

	var product models.Product
	if err := h.DB.Preload("Category").Preload("Images", models.GalleryOrder).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var variations []models.Variation
	if err := h.DB.Preload("Images", models.GalleryOrder).
		Where("product_id = ?", product.ID).Order("name ASC").
		Find(&variations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variations"})
		return
	}

	var selected *models.Variation
	if variationSlug != "" {
		for i := range variations {
			if variations[i].Slug == variationSlug {
				selected = &variations[i]
				break
			}
		}
		if selected == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variation not found"})
			return
		}
	} else if len(variations) > 0 {
		selected = &variations[0]
	}

	var related []models.Product
	h.DB.Preload("Images", models.GalleryOrder).
		Where("category_id = ? AND is_active = ? AND id <> ?", product.CategoryID, true, product.ID).
		Order("created_at DESC, id ASC").Limit(relatedLimit).
		Find(&related)

	c.JSON(http.StatusOK, gin.H{
		"product":            product,
		"variations":         variations,
		"selected_variation": selected,
		"related":            related,
	})
}
