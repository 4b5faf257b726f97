package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/albumnest/albumnest/app/models"
)

func membershipPhotoIDs(t *testing.T, db *gorm.DB, albumID string) []string {
	t.Helper()

	var rows []models.AlbumPhoto
	require.NoError(t, db.Where("album_id = ?", albumID).Order("position ASC").Find(&rows).Error)
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PhotoID)
	}
	return ids
}

func TestAddPhotoKeepsAlbumConsistent(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumPhotoRepository(db)
	album := createTestAlbum(t, db, "Trip")

	photo := &models.Photo{Caption: "sunset"}
	require.NoError(t, repo.AddPhoto(album.ID, photo))

	assert.Equal(t, album.ID, photo.AlbumID)
	assert.Equal(t, []string{photo.ID}, membershipPhotoIDs(t, db, album.ID))

	resolved, err := NewAlbumRepository(db).GetByID(album.ID)
	require.NoError(t, err)
	require.Len(t, resolved.Photos, 1)
	assert.Equal(t, photo.ID, resolved.Photos[0].ID)
	assert.Equal(t, "sunset", resolved.Photos[0].Caption)
}

func TestAddPhotoMissingAlbum(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumPhotoRepository(db)

	photo := &models.Photo{Caption: "sunset"}
	err := repo.AddPhoto("no-such-album", photo)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// nothing was committed
	var count int64
	require.NoError(t, db.Model(&models.Photo{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAddPhotoPreservesOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumPhotoRepository(db)
	album := createTestAlbum(t, db, "Trip")

	first := &models.Photo{Caption: "one"}
	second := &models.Photo{Caption: "two"}
	third := &models.Photo{Caption: "three"}
	require.NoError(t, repo.AddPhoto(album.ID, first))
	require.NoError(t, repo.AddPhoto(album.ID, second))
	require.NoError(t, repo.AddPhoto(album.ID, third))

	assert.Equal(t, []string{first.ID, second.ID, third.ID}, membershipPhotoIDs(t, db, album.ID))
}

func TestAddPhotoAppendsAfterRemoval(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumPhotoRepository(db)
	album := createTestAlbum(t, db, "Trip")

	first := &models.Photo{Caption: "one"}
	second := &models.Photo{Caption: "two"}
	third := &models.Photo{Caption: "three"}
	require.NoError(t, repo.AddPhoto(album.ID, first))
	require.NoError(t, repo.AddPhoto(album.ID, second))
	require.NoError(t, repo.AddPhoto(album.ID, third))

	// removing a non-tail photo leaves a gap in the positions
	require.NoError(t, repo.RemovePhoto(album.ID, first.ID))

	fourth := &models.Photo{Caption: "four"}
	require.NoError(t, repo.AddPhoto(album.ID, fourth))

	assert.Equal(t, []string{second.ID, third.ID, fourth.ID}, membershipPhotoIDs(t, db, album.ID))

	// no two rows may share a position, order would be nondeterministic
	var rows []models.AlbumPhoto
	require.NoError(t, db.Where("album_id = ?", album.ID).Find(&rows).Error)
	positions := make(map[int]bool, len(rows))
	for _, row := range rows {
		assert.False(t, positions[row.Position], "position %d assigned twice", row.Position)
		positions[row.Position] = true
	}
}

func TestRemovePhoto(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumPhotoRepository(db)
	album := createTestAlbum(t, db, "Trip")

	photo := &models.Photo{Caption: "sunset"}
	require.NoError(t, repo.AddPhoto(album.ID, photo))

	require.NoError(t, repo.RemovePhoto(album.ID, photo.ID))
	assert.Empty(t, membershipPhotoIDs(t, db, album.ID))

	_, err := NewPhotoRepository(db).GetByAlbumAndID(album.ID, photo.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// repeat delete reports not found
	err = repo.RemovePhoto(album.ID, photo.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRemovePhotoRejectsForeignAlbum(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumPhotoRepository(db)
	owner := createTestAlbum(t, db, "Owner")
	other := createTestAlbum(t, db, "Other")

	photo := &models.Photo{Caption: "sunset"}
	require.NoError(t, repo.AddPhoto(owner.ID, photo))

	err := repo.RemovePhoto(other.ID, photo.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// photo still belongs to its owner
	got, err := NewPhotoRepository(db).GetByAlbumAndID(owner.ID, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, photo.ID, got.ID)
}

func TestUpdatePhoto(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumPhotoRepository(db)
	album := createTestAlbum(t, db, "Trip")

	photo := &models.Photo{Caption: "sunset"}
	require.NoError(t, repo.AddPhoto(album.ID, photo))

	caption := "sunrise"
	updated, err := repo.UpdatePhoto(album.ID, photo.ID, PhotoPatch{Caption: &caption})
	require.NoError(t, err)
	assert.Equal(t, "sunrise", updated.Caption)
	assert.Equal(t, album.ID, updated.AlbumID)

	// membership untouched by updates
	assert.Equal(t, []string{photo.ID}, membershipPhotoIDs(t, db, album.ID))
}

func TestUpdatePhotoNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumPhotoRepository(db)
	album := createTestAlbum(t, db, "Trip")

	caption := "sunrise"
	_, err := repo.UpdatePhoto(album.ID, "no-such-photo", PhotoPatch{Caption: &caption})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestReconcileRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumPhotoRepository(db)
	album := createTestAlbum(t, db, "Trip")

	tracked := &models.Photo{Caption: "tracked"}
	require.NoError(t, repo.AddPhoto(album.ID, tracked))

	// photo written without a membership row
	stray := &models.Photo{AlbumID: album.ID, Caption: "stray"}
	require.NoError(t, db.Create(stray).Error)

	// membership row pointing at a photo that no longer exists
	require.NoError(t, db.Create(&models.AlbumPhoto{
		AlbumID:  album.ID,
		PhotoID:  "ghost-photo",
		Position: 7,
	}).Error)

	require.NoError(t, repo.Reconcile(album.ID))

	assert.Equal(t, []string{tracked.ID, stray.ID}, membershipPhotoIDs(t, db, album.ID))
}

func TestReconcileEmptyAlbum(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlbumPhotoRepository(db)
	album := createTestAlbum(t, db, "Empty")

	require.NoError(t, repo.Reconcile(album.ID))
	assert.Empty(t, membershipPhotoIDs(t, db, album.ID))
}
