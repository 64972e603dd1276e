package routes

import (
	"github.com/gofiber/fiber/v2"

	settingsCtl "github.com/AungS8430/schooler/internals/features/users/settings/controller"
)

func SettingsRoutes(r fiber.Router, ctl *settingsCtl.SettingsController) {
	r.Get("/settings", ctl.Page)
	r.Post("/settings", ctl.Save)
}
