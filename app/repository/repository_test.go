package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/albumnest/albumnest/app/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Album{},
		&models.Photo{},
		&models.AlbumPhoto{},
	))

	return db
}

func createTestAlbum(t *testing.T, db *gorm.DB, title string) *models.Album {
	t.Helper()

	album := &models.Album{Title: title}
	require.NoError(t, NewAlbumRepository(db).Create(album))
	return album
}
