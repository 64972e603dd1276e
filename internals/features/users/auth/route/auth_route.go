// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	controller "github.com/AungS8430/schooler/internals/features/users/auth/controller"
	rateLimiter "github.com/AungS8430/schooler/internals/middlewares"
)

// AuthRoutes mounts /login and the Google sign-in flow.
func AuthRoutes(app *fiber.App, ctrl *controller.AuthController) {
	app.Get("/login", ctrl.LoginPage)

	auth := app.Group("/auth", rateLimiter.LoginRateLimiter())
	auth.Get("/google", ctrl.GoogleRedirect)
	auth.Get("/google/callback", ctrl.GoogleCallback)
	auth.Post("/logout", ctrl.Logout)
}
