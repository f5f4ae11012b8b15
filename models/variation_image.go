package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VariationImage mirrors ProductImage but hangs off a variation. Same
// (sort_order, id) ordering contract.
type VariationImage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VariationID uuid.UUID `gorm:"type:uuid;not null;index" json:"variation_id"`
	ImageURL    string    `gorm:"not null" json:"image_url"`
	AltText     string    `gorm:"size:160" json:"alt_text"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (v *VariationImage) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
