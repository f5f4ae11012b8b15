package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DuplicateProduct clones a product and its gallery into new identity inside
// a single transaction: fresh id, name suffixed " (Copy)", SKU suffixed
// "-COPY" (further suffixed until free), slug recomputed from the new name,
// and every gallery row re-created with its original alt text and sort order
// pointing at the same underlying image asset. The original row is never
// touched. A duplicate-key race at insert time is retried once with a
// recomputed slug before being surfaced.
func DuplicateProduct(db *gorm.DB, productID uuid.UUID) (*Product, error) {
	var dup *Product
	err := db.Transaction(func(tx *gorm.DB) error {
		var original Product
		if err := tx.Preload("Images", GalleryOrder).First(&original, "id = ?", productID).Error; err != nil {
			return err
		}

		sku, err := copySKU(tx, original.SKU)
		if err != nil {
			return err
		}

		clone := Product{
			Name:             original.Name + " (Copy)",
			CategoryID:       original.CategoryID,
			Brand:            original.Brand,
			SKU:              sku,
			Price:            original.Price,
			MRP:              original.MRP,
			Stock:            original.Stock,
			ShortDescription: original.ShortDescription,
			Description:      original.Description,
			CoverImage:       original.CoverImage,
			IsActive:         original.IsActive,
			IsFeatured:       original.IsFeatured,
			Color:            original.Color,
			Size:             original.Size,
		}

		// Each attempt runs in its own savepoint: on Postgres a failed
		// insert aborts the surrounding transaction, which would turn the
		// retry into a "transaction is aborted" error instead of a second
		// chance.
		createClone := func() error {
			return tx.Transaction(func(inner *gorm.DB) error {
				return inner.Create(&clone).Error
			})
		}

		if err := createClone(); err != nil {
			if !IsUniqueViolation(err) {
				return err
			}
			// Lost a race on the slug or SKU; recompute both once.
			clone.ID = uuid.New()
			clone.Slug = ""
			if clone.SKU, err = copySKU(tx, original.SKU); err != nil {
				return err
			}
			if err := createClone(); err != nil {
				return err
			}
		}

		for _, img := range original.Images {
			copyImg := ProductImage{
				ProductID: clone.ID,
				ImageURL:  img.ImageURL,
				AltText:   img.AltText,
				SortOrder: img.SortOrder,
			}
			if err := tx.Create(&copyImg).Error; err != nil {
				return err
			}
		}

		dup = &clone
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dup, nil
}

// copySKU returns sku + "-COPY", numbering further copies ("-COPY-2", ...)
// until the value is free.
func copySKU(tx *gorm.DB, sku string) (string, error) {
	candidate := sku + "-COPY"
	for n := 2; n <= maxSlugAttempts; n++ {
		var count int64
		if err := tx.Session(&gorm.Session{NewDB: true}).
			Model(&Product{}).Where("sku = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-COPY-%d", sku, n)
	}
	return "", fmt.Errorf("could not find a free SKU for %q", sku)
}
