// internals/route/details/school_routes.go
package details

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	AnnouncementController "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/controller"
	AnnouncementRoutes "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/route"
	PeopleController "github.com/AungS8430/schooler/internals/features/school/people/controller"
	PeopleRoutes "github.com/AungS8430/schooler/internals/features/school/people/route"
	ResourcesController "github.com/AungS8430/schooler/internals/features/school/resources/controller"
	ResourcesRoutes "github.com/AungS8430/schooler/internals/features/school/resources/route"
	CalendarController "github.com/AungS8430/schooler/internals/features/school/schedule/calendar/controller"
	CalendarRoutes "github.com/AungS8430/schooler/internals/features/school/schedule/calendar/route"
	"github.com/AungS8430/schooler/internals/features/school/schedule/export"
	TimetableController "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/controller"
	TimetableRoutes "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/route"
	ttService "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/service"
)

type SchoolDeps struct {
	API        *schoolapi.Client
	Selections *ttService.SelectionStore
	Exporter   *export.Exporter
	Loc        *time.Location
	Done       <-chan struct{}
}

func (d SchoolDeps) timetable() *TimetableController.TimetableController {
	ctl := TimetableController.NewTimetableController(d.API, d.Selections, d.Exporter, d.Loc)
	ctl.Done = d.Done
	return ctl
}

/* ===================== PAGES (/app) ===================== */
func SchoolPageRoutes(r fiber.Router, d SchoolDeps) {
	AnnouncementRoutes.AnnouncementRoutes(r, AnnouncementController.NewAnnouncementController(d.API, d.Loc))
	TimetableRoutes.TimetablePageRoutes(r, d.timetable())
	CalendarRoutes.CalendarPageRoutes(r, CalendarController.NewCalendarController(d.API, d.Exporter, d.Loc))
	PeopleRoutes.PeopleRoutes(r, PeopleController.NewPeopleController(d.API))
	ResourcesRoutes.ResourcesRoutes(r, ResourcesController.NewResourcesController(d.API))
}

/* ===================== JSON (/api) ===================== */
func SchoolAPIRoutes(api fiber.Router, d SchoolDeps) {
	TimetableRoutes.TimetableAPIRoutes(api, d.timetable())
	CalendarRoutes.CalendarAPIRoutes(api, CalendarController.NewCalendarController(d.API, d.Exporter, d.Loc))
}
