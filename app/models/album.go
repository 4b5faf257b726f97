package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Album struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Description string         `gorm:"type:text" json:"description"`
	Metadata    map[string]any `gorm:"serializer:json" json:"metadata,omitempty"`
	Photos      []Photo        `gorm:"-" json:"photos"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the external id before the insert
func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Photos == nil {
		a.Photos = []Photo{}
	}
	return nil
}

// AfterFind keeps the photos field an array in JSON even when the
// membership list was not resolved
func (a *Album) AfterFind(tx *gorm.DB) error {
	if a.Photos == nil {
		a.Photos = []Photo{}
	}
	return nil
}
