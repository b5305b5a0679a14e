package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductImage stores the object key of an image held in the external image
// store. Clients only ever see the resolved URL.
type ProductImage struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Key        string    `gorm:"column:key;not null"`
	Position   int       `gorm:"column:position;not null;default:0"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime"`
}

func (i *ProductImage) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
