package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile carries the shipping/contact details attached 1:1 to a user.
type Profile struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	StreetAddress string    `gorm:"column:street_address"`
	City          string    `gorm:"column:city"`
	State         string    `gorm:"column:state"`
	ZipCode       string    `gorm:"column:zip_code"`
	Telephone     string    `gorm:"column:telephone"`
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
