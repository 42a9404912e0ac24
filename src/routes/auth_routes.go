package routes

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/devmesh/Backend-Dev-Mesh/src/config"
	"github.com/devmesh/Backend-Dev-Mesh/src/controllers"
	"github.com/devmesh/Backend-Dev-Mesh/src/middleware"
)

// AuthRoutes sets up registration, login, logout and the password reset flow.
// All of them sit behind the per-IP rate limiter.
func AuthRoutes(app *fiber.App, cfg *config.Config) {
	limiter := middleware.RateLimit(rate.Limit(cfg.AuthRateRPS), cfg.AuthRateBurst)

	app.Post("/signup", limiter, controllers.Signup)
	app.Post("/login", limiter, controllers.Login)
	app.Post("/logout", limiter, controllers.Logout)
	app.Post("/forgot-password", limiter, controllers.ForgotPassword)
	app.Post("/reset-password", limiter, controllers.ResetPassword)
}
