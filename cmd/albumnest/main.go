package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/albumnest/albumnest/app/controllers"
	"github.com/albumnest/albumnest/app/repository"
	"github.com/albumnest/albumnest/internal/pkg/cache"
	"github.com/albumnest/albumnest/internal/pkg/database"
	"github.com/albumnest/albumnest/internal/pkg/env"
	"github.com/albumnest/albumnest/internal/pkg/randomdata"
	"github.com/albumnest/albumnest/internal/pkg/router"
	"github.com/albumnest/albumnest/internal/pkg/token"
)

func main() {
	app := NewApplication()

	// close the store connection on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("[SHUTDOWN] closing server and database connection")
		if err := app.Shutdown(); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
		database.CloseDatabase()
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())

	// injected configuration, no module-level secrets
	secret := env.GetEnv("JWT_SECRET", "")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	tokens := token.NewService(secret, time.Hour)
	controllers.InitializeUserController(tokens)
	controllers.InitializeGeneratorController(randomdata.NewClient(randomdata.Config{
		APIKey: env.GetEnv("RANDOMMER_API_KEY", ""),
	}))

	app := fiber.New(fiber.Config{
		AppName: "albumnest",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}))

	// ROUTER
	router.InstallRouter(app, tokens)

	return app
}
