package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/devmesh/Backend-Dev-Mesh/src/config"
	"github.com/devmesh/Backend-Dev-Mesh/src/lib"
	"github.com/devmesh/Backend-Dev-Mesh/src/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	lib.InitLogger(cfg.Debug)
	defer lib.Log.Sync()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	lib.InitAuth(cfg.JWTSecret, cfg.TokenTTL)
	lib.ConnectDB(cfg)
	lib.ConnectRedis(cfg)
	lib.InitMailer(cfg)

	// Register routes
	routes.AuthRoutes(app, cfg)
	routes.ProfileRoutes(app)
	routes.RequestRoutes(app)
	routes.FeedRoutes(app)

	lib.Log.Info("Server is running", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		lib.Log.Fatal("Server stopped", zap.Error(err))
	}
}
