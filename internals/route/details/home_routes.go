package details

import (
	"time"

	"github.com/gofiber/fiber/v2"

	homeController "github.com/AungS8430/schooler/internals/features/home/dashboard/controller"
	homeRoute "github.com/AungS8430/schooler/internals/features/home/dashboard/route"
	settingsController "github.com/AungS8430/schooler/internals/features/users/settings/controller"
	settingsRoute "github.com/AungS8430/schooler/internals/features/users/settings/route"
)

func HomeRoutes(app *fiber.App, api homeController.API, loc *time.Location) {
	homeRoute.HomeRoutes(app, homeController.NewHomeController(api, loc))
}

func SettingsRoutes(r fiber.Router, secure bool) {
	settingsRoute.SettingsRoutes(r, settingsController.NewSettingsController(secure))
}
