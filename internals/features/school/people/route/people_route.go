package routes

import (
	"github.com/gofiber/fiber/v2"

	peopleCtl "github.com/AungS8430/schooler/internals/features/school/people/controller"
)

// PeopleRoutes mounts /app/people and /app/classes.
func PeopleRoutes(r fiber.Router, ctl *peopleCtl.PeopleController) {
	r.Get("/people", ctl.People)
	r.Get("/classes", ctl.Classes)
}
