package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxCategoryDepth caps the parent-chain walk in the cycle check. A chain
// longer than this is either a cycle the check raced past or a tree nobody
// intended to build.
const maxCategoryDepth = 32

var ErrCategoryCycle = errors.New("category cannot be its own ancestor")

type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Slug      string     `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent    *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children  []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	Products  []Product  `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeSave derives a unique slug from the name when none was supplied and
// rejects parent assignments that would close a cycle. An existing slug is
// never recomputed.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if err := c.checkParentCycle(tx); err != nil {
		return err
	}
	if c.Slug == "" {
		slug, err := UniqueSlug(tx, &Category{}, c.Name, "item", c.ID)
		if err != nil {
			return err
		}
		c.Slug = slug
	}
	return nil
}

func (c *Category) checkParentCycle(tx *gorm.DB) error {
	ancestor := c.ParentID
	for depth := 0; ancestor != nil; depth++ {
		if depth >= maxCategoryDepth {
			return ErrCategoryCycle
		}
		if *ancestor == c.ID {
			return ErrCategoryCycle
		}
		var parent Category
		if err := tx.Session(&gorm.Session{NewDB: true}).
			Select("id", "parent_id").First(&parent, "id = ?", *ancestor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		ancestor = parent.ParentID
	}
	return nil
}
