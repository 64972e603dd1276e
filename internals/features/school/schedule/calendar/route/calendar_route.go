package routes

import (
	"github.com/gofiber/fiber/v2"

	calCtl "github.com/AungS8430/schooler/internals/features/school/schedule/calendar/controller"
	rateLimiter "github.com/AungS8430/schooler/internals/middlewares"
)

// CalendarPageRoutes mounts /app/calendar.
func CalendarPageRoutes(r fiber.Router, ctl *calCtl.CalendarController) {
	grp := r.Group("/calendar")
	grp.Get("/", ctl.Page)
	grp.Get("/export", rateLimiter.ExportRateLimiter(), ctl.Export)
}

func CalendarAPIRoutes(api fiber.Router, ctl *calCtl.CalendarController) {
	api.Get("/calendar", ctl.JSON)
}
