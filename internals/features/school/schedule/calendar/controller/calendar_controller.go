// internals/features/school/schedule/calendar/controller/calendar_controller.go
package controller

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/features/school/schedule/calendar/model"
	"github.com/AungS8430/schooler/internals/features/school/schedule/calendar/service"
	"github.com/AungS8430/schooler/internals/features/school/schedule/export"
	helper "github.com/AungS8430/schooler/internals/helpers"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
	authMw "github.com/AungS8430/schooler/internals/middlewares/auth"
)

const (
	ScopeAcademic = "academic"
	ScopePersonal = "personal"
)

type API interface {
	authMw.PermissionSource
	AcademicCalendar(ctx context.Context, cred schoolapi.Credentials) (model.Calendar, error)
	PersonalCalendar(ctx context.Context, cred schoolapi.Credentials, class string) (model.Calendar, error)
}

type CalendarController struct {
	API      API
	Exporter *export.Exporter
	Loc      *time.Location
	Now      func() time.Time
}

func NewCalendarController(api API, exp *export.Exporter, loc *time.Location) *CalendarController {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarController{API: api, Exporter: exp, Loc: loc, Now: time.Now}
}

func (h *CalendarController) today() model.Date {
	n := h.Now().In(h.Loc)
	return model.NewDate(n.Year(), n.Month(), n.Day())
}

func scopeOf(c *fiber.Ctx) string {
	if strings.EqualFold(strings.TrimSpace(c.Query("scope")), ScopePersonal) {
		return ScopePersonal
	}
	return ScopeAcademic
}

// load fetches the calendar for scope. Personal calendars use the class from
// the user's permissions.
func (h *CalendarController) load(c *fiber.Ctx, scope string) (model.Calendar, error) {
	cred := helperAuth.APICredentials(c)
	if scope == ScopePersonal {
		perms := authMw.LoadPermissions(c, h.API)
		return h.API.PersonalCalendar(c.UserContext(), cred, perms.Class)
	}
	return h.API.AcademicCalendar(c.UserContext(), cred)
}

func title(scope string) string {
	if scope == ScopePersonal {
		return "My Calendar"
	}
	return "Academic Calendar"
}

// GET /app/calendar?scope=
func (h *CalendarController) Page(c *fiber.Ctx) error {
	scope := scopeOf(c)
	cal, err := h.load(c, scope)
	if err != nil {
		schoolapi.Degrade("calendar "+scope, err)
	}

	return c.Render("pages/calendar", fiber.Map{
		"Title":  title(scope),
		"Nav":    "calendar",
		"Scope":  scope,
		"Month":  service.BuildMonthGrid(cal, h.today()),
		"Failed": err != nil,
	}, "layouts/main")
}

// GET /app/calendar/export?scope=&format=
func (h *CalendarController) Export(c *fiber.Ctx) error {
	scope := scopeOf(c)
	cal, err := h.load(c, scope)
	if err != nil {
		return err
	}

	month := service.BuildMonthGrid(cal, h.today())
	dark, _ := c.Locals(helperAuth.LocDark).(bool)
	res, err := h.Exporter.Export(c.UserContext(), export.Request{
		Kind:   export.KindCalendar,
		Day:    h.Now().In(h.Loc),
		Format: export.ParseFormat(c.Query("format")),
		Target: export.Container(export.KindCalendar, dark, len(month.Days())),
		Scene:  export.CalendarScene{Month: month, Title: title(scope)},
	})
	if err != nil {
		return export.Fail(c, err)
	}
	return export.Deliver(c, res)
}

// GET /api/calendar?scope=
func (h *CalendarController) JSON(c *fiber.Ctx) error {
	scope := scopeOf(c)
	cal, err := h.load(c, scope)
	if err != nil {
		status := helper.StatusOf(err)
		return helper.JsonError(c, status, helper.PublicMessage(err, status))
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"scope": scope,
		"month": service.BuildMonthGrid(cal, h.today()),
	})
}
