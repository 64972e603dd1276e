package routes

import (
	"github.com/gofiber/fiber/v2"

	homeCtl "github.com/AungS8430/schooler/internals/features/home/dashboard/controller"
)

func HomeRoutes(app fiber.Router, ctl *homeCtl.HomeController) {
	app.Get("/", ctl.Home)
}
