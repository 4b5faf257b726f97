package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/albumnest/albumnest/app/models"
	"github.com/albumnest/albumnest/app/repository"
)

type photoRequest struct {
	Title    string         `json:"title"`
	Caption  string         `json:"caption"`
	URL      string         `json:"url"`
	Metadata map[string]any `json:"metadata"`
}

type photoUpdateRequest struct {
	Title    *string        `json:"title"`
	Caption  *string        `json:"caption"`
	URL      *string        `json:"url"`
	Metadata map[string]any `json:"metadata"`
}

// HandlePhotoCreate creates a photo inside the named album and returns the
// album with photos resolved. Photo creation and membership update happen
// in one transaction, a failed step rolls the whole mutation back.
func HandlePhotoCreate(c *fiber.Ctx) error {
	albumID := c.Params("idalbum")

	var req photoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Bad request"})
	}

	photo := &models.Photo{
		Title:    req.Title,
		Caption:  req.Caption,
		URL:      req.URL,
		Metadata: req.Metadata,
	}

	factory := repository.GetGlobalFactory()
	if err := factory.GetAlbumPhotoRepository().AddPhoto(albumID, photo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Album not found"})
		}
		log.Printf("photo create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	invalidateAlbumCache(albumID)

	album, err := factory.GetAlbumRepository().GetByID(albumID)
	if err != nil {
		log.Printf("photo create album reload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.JSON(album)
}

// HandlePhotoUpdate patches a photo scoped to its album and returns the
// album with photos resolved. Falls back to the bare updated photo when
// the album reload fails.
func HandlePhotoUpdate(c *fiber.Ctx) error {
	albumID := c.Params("idalbum")
	photoID := c.Params("idphotos")

	var req photoUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Bad request"})
	}

	factory := repository.GetGlobalFactory()
	photo, err := factory.GetAlbumPhotoRepository().UpdatePhoto(albumID, photoID, repository.PhotoPatch{
		Title:    req.Title,
		Caption:  req.Caption,
		URL:      req.URL,
		Metadata: req.Metadata,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Photo not found"})
		}
		log.Printf("photo update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	invalidateAlbumCache(albumID)

	album, err := factory.GetAlbumRepository().GetByID(albumID)
	if err != nil {
		log.Printf("photo update album reload failed: %v", err)
		return c.JSON(photo)
	}

	return c.JSON(album)
}

// HandlePhotoShow returns a single photo scoped to its album.
func HandlePhotoShow(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetPhotoRepository()

	photo, err := repo.GetByAlbumAndID(c.Params("idalbum"), c.Params("idphotos"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Photo not found"})
		}
		log.Printf("photo show failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.JSON(photo)
}

// HandlePhotoList returns the photos of an album in membership order.
func HandlePhotoList(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetAlbumRepository()

	album, err := repo.GetByID(c.Params("idalbum"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Album not found"})
		}
		log.Printf("photo list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.JSON(album.Photos)
}

// HandlePhotoDelete removes a photo scoped to its album and returns the
// album with photos resolved. Photo and membership row are removed in one
// transaction.
func HandlePhotoDelete(c *fiber.Ctx) error {
	albumID := c.Params("idalbum")
	photoID := c.Params("idphotos")

	factory := repository.GetGlobalFactory()
	if err := factory.GetAlbumPhotoRepository().RemovePhoto(albumID, photoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Photo not found"})
		}
		log.Printf("photo delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	invalidateAlbumCache(albumID)

	album, err := factory.GetAlbumRepository().GetByID(albumID)
	if err != nil {
		log.Printf("photo delete album reload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.JSON(album)
}
