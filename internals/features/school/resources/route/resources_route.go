package routes

import (
	"github.com/gofiber/fiber/v2"

	resCtl "github.com/AungS8430/schooler/internals/features/school/resources/controller"
)

func ResourcesRoutes(r fiber.Router, ctl *resCtl.ResourcesController) {
	r.Get("/resources", ctl.List)
}
