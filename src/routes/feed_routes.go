package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devmesh/Backend-Dev-Mesh/src/controllers"
	"github.com/devmesh/Backend-Dev-Mesh/src/middleware"
)

func FeedRoutes(app *fiber.App) {
	app.Get("/feed", middleware.ProtectRoute, controllers.GetFeed)
}
