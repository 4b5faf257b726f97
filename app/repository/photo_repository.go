package repository

import (
	"gorm.io/gorm"

	"github.com/albumnest/albumnest/app/models"
)

// photoRepository implements the PhotoRepository interface
type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository instance
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// GetByAlbumAndID retrieves a photo scoped to its album. Photos belonging
// to a different album are treated as not found.
func (r *photoRepository) GetByAlbumAndID(albumID, photoID string) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.Where("id = ? AND album_id = ?", photoID, albumID).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListByAlbum retrieves the photos of an album in membership order
func (r *photoRepository) ListByAlbum(albumID string) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.
		Joins("JOIN album_photos ON album_photos.photo_id = photos.id").
		Where("album_photos.album_id = ?", albumID).
		Order("album_photos.position ASC").
		Find(&photos).Error
	if photos == nil {
		photos = []models.Photo{}
	}
	return photos, err
}
