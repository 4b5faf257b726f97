package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/albumnest/albumnest/app/controllers"
	"github.com/albumnest/albumnest/internal/pkg/env"
	"github.com/albumnest/albumnest/internal/pkg/middleware"
	"github.com/albumnest/albumnest/internal/pkg/token"
)

type HttpRouter struct {
	tokens *token.Service
}

func NewHttpRouter(tokens *token.Service) *HttpRouter {
	return &HttpRouter{tokens: tokens}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// 100 requests per hour per client, counters shared across instances
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Hour,
		Storage:    newLimiterStorage(),
	}))

	h.registerRoutes(app)
}

// newLimiterStorage builds the redis-backed storage for rate limit
// counters. Database 1 keeps them apart from the cache (DB 0).
func newLimiterStorage() fiber.Storage {
	port, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379"))
	if err != nil {
		port = 6379
	}
	return redis.New(redis.Config{
		Host:     env.GetEnv("CACHE_HOST", "localhost"),
		Port:     port,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		Database: 1,
	})
}

func (h HttpRouter) registerRoutes(app *fiber.App) {
	requireAuth := middleware.RequireToken(h.tokens)

	app.Get("/", controllers.HandleRoot)

	// Users
	app.Post("/user", controllers.HandleUserRegister)
	app.Post("/user/login", controllers.HandleUserLogin)
	app.Get("/user/protected", requireAuth, controllers.HandleUserProtected)
	app.Get("/user/:id", controllers.HandleUserShow)
	app.Get("/user", controllers.HandleUserList)
	app.Delete("/user/:id", controllers.HandleUserDelete)

	// Albums
	app.Post("/album", requireAuth, controllers.HandleAlbumCreate)
	app.Put("/album/:id", requireAuth, controllers.HandleAlbumUpdate)
	app.Get("/albums", requireAuth, controllers.HandleAlbumList)
	app.Delete("/album/:id", requireAuth, controllers.HandleAlbumDelete)

	app.Get("/album/:id", requireAuth, controllers.HandleAlbumShow)

	// Photos nested under albums, public like the original API
	app.Post("/album/:idalbum/photo", controllers.HandlePhotoCreate)
	app.Put("/album/:idalbum/photo/:idphotos", controllers.HandlePhotoUpdate)
	app.Get("/album/:idalbum/photos/:idphotos", controllers.HandlePhotoShow)
	app.Get("/album/:idalbum/photos", controllers.HandlePhotoList)
	app.Delete("/album/:idalbum/photo/:idphotos", controllers.HandlePhotoDelete)

	// Aggregator proxies
	app.Get("/generate", controllers.HandleGenerate)
	app.Get("/random-user", controllers.HandleRandomUser)
}
