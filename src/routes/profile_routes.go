package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devmesh/Backend-Dev-Mesh/src/controllers"
	"github.com/devmesh/Backend-Dev-Mesh/src/middleware"
)

func ProfileRoutes(app *fiber.App) {
	app.Get("/profile", middleware.ProtectRoute, controllers.GetProfile)
	app.Patch("/profile", middleware.ProtectRoute, controllers.UpdateProfile)
}
