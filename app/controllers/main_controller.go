package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleRoot is the hello endpoint.
func HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"message": "Hello World!",
	})
}
