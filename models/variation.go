package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Variation carries only the fields that differ from its base product
// (price, descriptions etc. are inherited from the Product, not duplicated).
type Variation struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_variations_product_slug" json:"product_id"`
	Product   Product          `gorm:"foreignKey:ProductID" json:"-"`
	Name      string           `gorm:"size:160" json:"name"`
	Slug      string           `gorm:"size:220;not null;uniqueIndex:idx_variations_product_slug" json:"slug"`
	SKU       string           `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Color     string           `gorm:"size:60" json:"color"`
	Size      string           `gorm:"size:60" json:"size"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Images    []VariationImage `gorm:"foreignKey:VariationID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

func (v *Variation) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// BeforeSave derives a slug unique among the product's variations. When the
// variation has no name the base is built from "color size", falling back to
// "variant" when those are blank too.
func (v *Variation) BeforeSave(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Slug == "" {
		base := v.Name
		if base == "" {
			base = strings.TrimSpace(strings.Join(nonEmpty(v.Color, v.Size), " "))
		}
		sameProduct := func(db *gorm.DB) *gorm.DB {
			return db.Where("product_id = ?", v.ProductID)
		}
		slug, err := UniqueSlug(tx, &Variation{}, base, "variant", v.ID, sameProduct)
		if err != nil {
			return err
		}
		v.Slug = slug
	}
	return nil
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, s := range values {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
