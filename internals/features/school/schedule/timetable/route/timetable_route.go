package routes

import (
	"github.com/gofiber/fiber/v2"

	ttCtl "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/controller"
	rateLimiter "github.com/AungS8430/schooler/internals/middlewares"
)

// TimetablePageRoutes mounts /app/schedule.
func TimetablePageRoutes(r fiber.Router, ctl *ttCtl.TimetableController) {
	grp := r.Group("/schedule")
	grp.Get("/", ctl.Page)
	grp.Post("/select", ctl.Select)
	grp.Get("/export", rateLimiter.ExportRateLimiter(), ctl.Export)
	grp.Get("/progress", ctl.Progress)
}

// TimetableAPIRoutes mounts the JSON endpoint under /api.
func TimetableAPIRoutes(api fiber.Router, ctl *ttCtl.TimetableController) {
	api.Get("/timetable", ctl.JSON)
}
