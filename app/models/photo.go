package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Photo struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	AlbumID   string         `gorm:"type:varchar(36);index;not null" json:"album" validate:"required"`
	Title     string         `gorm:"type:varchar(255)" json:"title"`
	Caption   string         `gorm:"type:text" json:"caption"`
	URL       string         `gorm:"type:varchar(255)" json:"url"`
	Metadata  map[string]any `gorm:"serializer:json" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the external id before the insert
func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
