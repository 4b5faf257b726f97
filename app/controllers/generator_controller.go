package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/albumnest/albumnest/internal/pkg/randomdata"
)

var randomClient *randomdata.Client

// InitializeGeneratorController wires the random-data client used by the
// aggregator endpoints.
func InitializeGeneratorController(client *randomdata.Client) {
	randomClient = client
}

// HandleRandomUser proxies a single random user, forwarding the gender and
// nat query filters.
func HandleRandomUser(c *fiber.Ctx) error {
	user, err := randomClient.RandomUser(c.Query("gender"), c.Query("nat"))
	if err != nil {
		log.Printf("random user fetch failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch random user"})
	}

	return c.JSON(user)
}

// HandleGenerate fans out to all random-data providers and merges the
// results.
func HandleGenerate(c *fiber.Ctx) error {
	data, err := randomClient.Generate()
	if err != nil {
		log.Printf("generate fan-out failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch generated data"})
	}

	return c.JSON(fiber.Map{
		"generatedData1": fiber.Map{
			"user": data.User,
		},
		"generatedData2": fiber.Map{
			"phone":    data.Phone,
			"iban":     data.IBAN,
			"card":     data.Card,
			"fullname": data.FullName,
			"snumber":  data.SocialNumber,
		},
	})
}
