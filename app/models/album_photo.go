package models

import "time"

// AlbumPhoto is an ordered membership row linking a photo to its album.
// Rows are written only through the album/photo relationship operations.
type AlbumPhoto struct {
	AlbumID   string    `gorm:"type:varchar(36);primaryKey" json:"album_id"`
	PhotoID   string    `gorm:"type:varchar(36);primaryKey" json:"photo_id"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
