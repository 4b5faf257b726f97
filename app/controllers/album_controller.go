package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/albumnest/albumnest/app/models"
	"github.com/albumnest/albumnest/app/repository"
	"github.com/albumnest/albumnest/internal/pkg/cache"
)

const albumCacheTTL = 30 * time.Second

type albumRequest struct {
	Title       string         `json:"title" validate:"required,min=1,max=255"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

type albumUpdateRequest struct {
	Title       *string        `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string        `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

// HandleAlbumCreate creates a new album from the typed payload.
func HandleAlbumCreate(c *fiber.Ctx) error {
	var req albumRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Bad request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	album := &models.Album{
		Title:       req.Title,
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	repo := repository.GetGlobalFactory().GetAlbumRepository()
	if err := repo.Create(album); err != nil {
		log.Printf("album create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.JSON(album)
}

// HandleAlbumUpdate patches the album by id and returns the updated
// record, or an empty object when absent.
func HandleAlbumUpdate(c *fiber.Ctx) error {
	var req albumUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Bad request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	repo := repository.GetGlobalFactory().GetAlbumRepository()

	album, err := repo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{})
		}
		log.Printf("album update lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	if req.Title != nil {
		album.Title = *req.Title
	}
	if req.Description != nil {
		album.Description = *req.Description
	}
	if req.Metadata != nil {
		album.Metadata = req.Metadata
	}

	if err := repo.Update(album); err != nil {
		log.Printf("album update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	invalidateAlbumCache(album.ID)

	return c.JSON(album)
}

// HandleAlbumShow returns the album with photos resolved, or an empty
// object when absent. Resolved payloads are cached briefly.
func HandleAlbumShow(c *fiber.Ctx) error {
	albumID := c.Params("id")

	if cached, err := cache.Get(albumCacheKey(albumID)); err == nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	repo := repository.GetGlobalFactory().GetAlbumRepository()

	album, err := repo.GetByID(albumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{})
		}
		log.Printf("album show failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	if payload, err := json.Marshal(album); err == nil {
		if err := cache.Set(albumCacheKey(albumID), payload, albumCacheTTL); err != nil {
			log.Printf("album cache write failed: %v", err)
		}
	}

	return c.JSON(album)
}

// HandleAlbumList returns all albums without resolving photos.
func HandleAlbumList(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetAlbumRepository()

	albums, err := repo.List()
	if err != nil {
		log.Printf("album list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.JSON(albums)
}

// HandleAlbumDelete removes the album by id and returns the deleted
// record, or an empty object when absent. Photos of the album are kept.
func HandleAlbumDelete(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetAlbumRepository()

	album, err := repo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{})
		}
		log.Printf("album delete lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	if err := repo.Delete(album.ID); err != nil {
		log.Printf("album delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	invalidateAlbumCache(album.ID)

	return c.JSON(album)
}

func invalidateAlbumCache(albumID string) {
	if err := cache.Delete(albumCacheKey(albumID)); err != nil {
		log.Printf("album cache invalidation failed: %v", err)
	}
}
