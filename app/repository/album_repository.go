package repository

import (
	"gorm.io/gorm"

	"github.com/albumnest/albumnest/app/models"
)

// albumRepository implements the AlbumRepository interface
type albumRepository struct {
	db *gorm.DB
}

// NewAlbumRepository creates a new album repository instance
func NewAlbumRepository(db *gorm.DB) AlbumRepository {
	return &albumRepository{db: db}
}

// Create creates a new album in the database
func (r *albumRepository) Create(album *models.Album) error {
	return r.db.Create(album).Error
}

// GetByID retrieves an album by its ID with its photos resolved in
// membership order
func (r *albumRepository) GetByID(id string) (*models.Album, error) {
	var album models.Album
	if err := r.db.First(&album, "id = ?", id).Error; err != nil {
		return nil, err
	}

	photos, err := r.GetPhotos(id)
	if err != nil {
		return nil, err
	}
	album.Photos = photos

	return &album, nil
}

// List retrieves all albums without resolving photos
func (r *albumRepository) List() ([]models.Album, error) {
	var albums []models.Album
	err := r.db.Order("created_at ASC").Find(&albums).Error
	return albums, err
}

// Update updates an existing album in the database
func (r *albumRepository) Update(album *models.Album) error {
	return r.db.Save(album).Error
}

// Delete removes the album's membership rows and soft deletes the album.
// Photos are deliberately left in place, orphaned photos keep their album
// back-reference.
func (r *albumRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("album_id = ?", id).Delete(&models.AlbumPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Album{}, "id = ?", id).Error
	})
}

// GetPhotos retrieves all photos in an album, ordered by membership position
func (r *albumRepository) GetPhotos(albumID string) ([]models.Photo, error) {
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

// Count returns the total number of albums
func (r *albumRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Album{}).Count(&count).Error
	return count, err
}
