package controllers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/albumnest/albumnest/app/models"
	"github.com/albumnest/albumnest/app/repository"
	"github.com/albumnest/albumnest/internal/pkg/token"
	"github.com/albumnest/albumnest/internal/pkg/usercontext"
)

var userTokens *token.Service

// InitializeUserController wires the token service used for login and the
// protected route.
func InitializeUserController(tokens *token.Service) {
	userTokens = tokens
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleUserRegister creates a new user account. The password is stored as
// a bcrypt hash and never echoed back.
func HandleUserRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Bad request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()

	if _, err := repo.GetByEmail(req.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "User already exists"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("user register lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	user, err := models.NewUser(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	if err := repo.Create(user); err != nil {
		// a concurrent register can slip past the lookup, the unique
		// index on email is the authoritative check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "User already exists"})
		}
		log.Printf("user register create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// HandleUserLogin checks credentials and issues a bearer token valid for
// one hour.
func HandleUserLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Bad request"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()

	user, err := repo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid credentials"})
		}
		log.Printf("user login lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	if !user.CheckPassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid credentials"})
	}

	signed, err := userTokens.Issue(user.ID, user.Email)
	if err != nil {
		log.Printf("token issue failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.JSON(fiber.Map{"token": signed})
}

// HandleUserProtected greets the authenticated user. Runs behind the
// bearer token middleware.
func HandleUserProtected(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Welcome %s, access granted.", userCtx.Email),
	})
}

// HandleUserShow returns the user by id, or an empty object when absent.
func HandleUserShow(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetUserRepository()

	user, err := repo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{})
		}
		log.Printf("user show failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.JSON(user)
}

// HandleUserList returns all users.
func HandleUserList(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetUserRepository()

	users, err := repo.List()
	if err != nil {
		log.Printf("user list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.JSON(users)
}

// HandleUserDelete removes the user by id and returns the deleted record,
// or an empty object when absent.
func HandleUserDelete(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetUserRepository()

	user, err := repo.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{})
		}
		log.Printf("user delete lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	if err := repo.Delete(user.ID); err != nil {
		log.Printf("user delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal Server error"})
	}

	return c.JSON(user)
}
