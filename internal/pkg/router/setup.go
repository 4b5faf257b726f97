package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/albumnest/albumnest/internal/pkg/token"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App, tokens *token.Service) {
	setup(app, NewHttpRouter(tokens))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
