package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeMRP   = errors.New("mrp must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

type Product struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name             string         `gorm:"size:180;not null" json:"name"`
	Slug             string         `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	CategoryID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Category         Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand            string         `gorm:"size:120;index" json:"brand"`
	SKU              string         `gorm:"size:80;uniqueIndex;not null" json:"sku"`
	Price            float64        `gorm:"not null" json:"price"`
	MRP              *float64       `json:"mrp,omitempty"`
	Stock            int            `gorm:"default:0" json:"stock"`
	ShortDescription string         `gorm:"size:240" json:"short_description"`
	Description      string         `json:"description"`
	CoverImage       string         `json:"cover_image"`
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`
	IsFeatured       bool           `gorm:"default:false" json:"is_featured"`
	Color            string         `gorm:"size:60" json:"color"`
	Size             string         `gorm:"size:60" json:"size"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	Images           []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Variations       []Variation    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variations,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave validates the non-negativity constraints and derives a unique
// slug from the name on first save. An existing slug is never recomputed.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.MRP != nil && *p.MRP < 0 {
		return ErrNegativeMRP
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	if p.Slug == "" {
		slug, err := UniqueSlug(tx, &Product{}, p.Name, "item", p.ID)
		if err != nil {
			return err
		}
		p.Slug = slug
	}
	return nil
}

// SellingPrice is what the storefront charges. It is always the base price;
// MRP is display-only strike-through data and never feeds a discount here.
func (p *Product) SellingPrice() float64 {
	return p.Price
}
