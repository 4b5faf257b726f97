package repository

import (
	"gorm.io/gorm"

	"github.com/albumnest/albumnest/app/models"
)

// albumPhotoRepository implements the AlbumPhotoRepository interface.
//
// Invariant: after any successful operation, the set of photos whose
// album_id names an album equals the set of that album's membership rows.
// Each operation mutates both tables inside one transaction, so a failed
// step rolls back the whole mutation instead of leaving orphans behind.
type albumPhotoRepository struct {
	db *gorm.DB
}

// NewAlbumPhotoRepository creates a new album/photo relationship repository instance
func NewAlbumPhotoRepository(db *gorm.DB) AlbumPhotoRepository {
	return &albumPhotoRepository{db: db}
}

// AddPhoto creates the photo inside the named album and appends it to the
// album's membership list. The new row goes strictly after the current
// tail, positions left behind by removals are never reused.
func (r *albumPhotoRepository) AddPhoto(albumID string, photo *models.Photo) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var album models.Album
		if err := tx.First(&album, "id = ?", albumID).Error; err != nil {
			return err
		}

		photo.AlbumID = albumID
		if err := tx.Create(photo).Error; err != nil {
			return err
		}

		var next int
		if err := tx.Model(&models.AlbumPhoto{}).
			Where("album_id = ?", albumID).
			Select("COALESCE(MAX(position) + 1, 0)").
			Scan(&next).Error; err != nil {
			return err
		}

		return tx.Create(&models.AlbumPhoto{
			AlbumID:  albumID,
			PhotoID:  photo.ID,
			Position: next,
		}).Error
	})
}

// RemovePhoto deletes the photo scoped to its album and pulls it from the
// album's membership list. Returns gorm.ErrRecordNotFound when no photo
// matches the (album, photo) pair.
func (r *albumPhotoRepository) RemovePhoto(albumID, photoID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND album_id = ?", photoID, albumID).Delete(&models.Photo{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("album_id = ? AND photo_id = ?", albumID, photoID).
			Delete(&models.AlbumPhoto{}).Error
	})
}

// UpdatePhoto applies the patch to the photo scoped to its album and
// returns the updated record. Membership is untouched, photos only enter
// or leave an album at create/delete boundaries.
func (r *albumPhotoRepository) UpdatePhoto(albumID, photoID string, patch PhotoPatch) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND album_id = ?", photoID, albumID).First(&photo).Error; err != nil {
			return err
		}

		if patch.Title != nil {
			photo.Title = *patch.Title
		}
		if patch.Caption != nil {
			photo.Caption = *patch.Caption
		}
		if patch.URL != nil {
			photo.URL = *patch.URL
		}
		if patch.Metadata != nil {
			photo.Metadata = patch.Metadata
		}

		return tx.Save(&photo).Error
	})
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// Reconcile recomputes the album's membership rows from the photos table.
// Still-valid rows keep their relative order, photos missing a row are
// appended in creation order, stale rows are dropped. Positions are
// renumbered from zero.
func (r *albumPhotoRepository) Reconcile(albumID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var photos []models.Photo
		if err := tx.Where("album_id = ?", albumID).Order("created_at ASC").Find(&photos).Error; err != nil {
			return err
		}
		current := make(map[string]bool, len(photos))
		for _, p := range photos {
			current[p.ID] = true
		}

		var memberships []models.AlbumPhoto
		if err := tx.Where("album_id = ?", albumID).Order("position ASC").Find(&memberships).Error; err != nil {
			return err
		}

		ordered := make([]string, 0, len(photos))
		seen := make(map[string]bool, len(photos))
		for _, m := range memberships {
			if current[m.PhotoID] && !seen[m.PhotoID] {
				ordered = append(ordered, m.PhotoID)
				seen[m.PhotoID] = true
			}
		}
		for _, p := range photos {
			if !seen[p.ID] {
				ordered = append(ordered, p.ID)
				seen[p.ID] = true
			}
		}

		if err := tx.Where("album_id = ?", albumID).Delete(&models.AlbumPhoto{}).Error; err != nil {
			return err
		}
		for i, photoID := range ordered {
			row := models.AlbumPhoto{AlbumID: albumID, PhotoID: photoID, Position: i}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
