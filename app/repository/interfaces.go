package repository

import (
	"gorm.io/gorm"

	"github.com/albumnest/albumnest/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	Delete(id string) error
	Count() (int64, error)
}

// AlbumRepository defines the interface for album-related database operations
type AlbumRepository interface {
	Create(album *models.Album) error
	GetByID(id string) (*models.Album, error)
	List() ([]models.Album, error)
	Update(album *models.Album) error
	Delete(id string) error
	GetPhotos(albumID string) ([]models.Photo, error)
	Count() (int64, error)
}

// PhotoRepository defines the interface for photo reads scoped to an album
type PhotoRepository interface {
	GetByAlbumAndID(albumID, photoID string) (*models.Photo, error)
	ListByAlbum(albumID string) ([]models.Photo, error)
}

// AlbumPhotoRepository keeps album membership and photo rows mutually
// consistent. Every mutation runs as a single transaction.
type AlbumPhotoRepository interface {
	AddPhoto(albumID string, photo *models.Photo) error
	RemovePhoto(albumID, photoID string) error
	UpdatePhoto(albumID, photoID string, patch PhotoPatch) (*models.Photo, error)
	Reconcile(albumID string) error
}

// PhotoPatch carries the updatable fields of a photo. Nil pointers leave
// the stored value untouched.
type PhotoPatch struct {
	Title    *string
	Caption  *string
	URL      *string
	Metadata map[string]any
}

// Repositories struct holds all repository instances
type Repositories struct {
	User       UserRepository
	Album      AlbumRepository
	Photo      PhotoRepository
	AlbumPhoto AlbumPhotoRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Album:      NewAlbumRepository(db),
		Photo:      NewPhotoRepository(db),
		AlbumPhoto: NewAlbumPhotoRepository(db),
	}
}
