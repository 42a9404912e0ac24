package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devmesh/Backend-Dev-Mesh/src/controllers"
	"github.com/devmesh/Backend-Dev-Mesh/src/middleware"
)

// RequestRoutes sets up the connection-request workflow: sending, reviewing,
// listing pending requests and listing established connections
func RequestRoutes(app *fiber.App) {
	app.Post("/send/:status/:toUserId", middleware.ProtectRoute, controllers.SendConnectionRequest)
	app.Post("/review/:status/:requestedUserId", middleware.ProtectRoute, controllers.ReviewConnectionRequest)
	app.Get("/received/incoming", middleware.ProtectRoute, controllers.GetIncomingRequests)
	app.Get("/received/outgoing", middleware.ProtectRoute, controllers.GetOutgoingRequests)
	app.Get("/connections", middleware.ProtectRoute, controllers.GetConnections)
}
