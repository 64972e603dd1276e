package routes

import (
	"github.com/gofiber/fiber/v2"

	annCtl "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/controller"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
	authMw "github.com/AungS8430/schooler/internals/middlewares/auth"
)

// AnnouncementRoutes mounts under the signed-in /app group.
func AnnouncementRoutes(r fiber.Router, ctl *annCtl.AnnouncementController) {
	grp := r.Group("/announcements")
	grp.Get("/", ctl.List)

	publish := authMw.OnlyRoles(ctl.API, "Only teachers and admins can create announcements.",
		authModel.RoleTeacher, authModel.RoleAdmin)
	grp.Get("/create", publish, ctl.CreateForm)
	grp.Post("/create", publish, ctl.Create)

	grp.Get("/:id", ctl.Detail)
	grp.Post("/:id/delete", ctl.Delete)
}
