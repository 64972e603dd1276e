package controller_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/features/school/schedule/calendar/controller"
	"github.com/AungS8430/schooler/internals/features/school/schedule/calendar/dto"
	"github.com/AungS8430/schooler/internals/features/school/schedule/calendar/model"
	routes "github.com/AungS8430/schooler/internals/features/school/schedule/calendar/route"
	"github.com/AungS8430/schooler/internals/features/school/schedule/export"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
	helper "github.com/AungS8430/schooler/internals/helpers"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
	"github.com/AungS8430/schooler/internals/helpers/testkit"
)

type fakeAPI struct {
	personalClass string
	academicCalls int
}

func (f *fakeAPI) Permissions(ctx context.Context, cred schoolapi.Credentials) (authModel.Permissions, error) {
	return authModel.Permissions{Role: "student", Class: "C4R1"}, nil
}

func (f *fakeAPI) AcademicCalendar(ctx context.Context, cred schoolapi.Credentials) (model.Calendar, error) {
	f.academicCalls++
	return model.Calendar{
		Start: model.NewDate(2025, time.December, 1),
		End:   model.NewDate(2025, time.December, 31),
		Events: []model.Event{
			{ID: 1, Type: model.EventExam, Title: "Midterm", Start: model.NewDate(2025, time.December, 10), End: model.NewDate(2025, time.December, 12)},
		},
	}, nil
}

func (f *fakeAPI) PersonalCalendar(ctx context.Context, cred schoolapi.Credentials, class string) (model.Calendar, error) {
	f.personalClass = class
	return model.Calendar{}, &schoolapi.StatusError{Method: "GET", Path: "/calendar/personal", Code: 500}
}

func newApp(api *fakeAPI) (*fiber.App, *testkit.Views) {
	views := &testkit.Views{}
	app := testkit.App(views, helper.ErrorHandler)
	app.Use(testkit.WithLocals(map[string]any{
		helperAuth.LocSession: helperAuth.Session{UserID: "u1", Email: "a@example.com"},
	}))
	ctl := controller.NewCalendarController(api, export.NewExporter(nil, time.Minute), time.UTC)
	ctl.Now = func() time.Time { return time.Date(2025, 12, 11, 9, 0, 0, 0, time.UTC) }
	routes.CalendarPageRoutes(app.Group("/app"), ctl)
	routes.CalendarAPIRoutes(app.Group("/api"), ctl)
	return app, views
}

func TestAcademicPage(t *testing.T) {
	api := &fakeAPI{}
	app, views := newApp(api)

	resp, err := app.Test(httptest.NewRequest("GET", "/app/calendar", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	r := views.Last()
	assert.Equal(t, "pages/calendar", r.Name)
	assert.Equal(t, controller.ScopeAcademic, r.Bind["Scope"])
	assert.Equal(t, false, r.Bind["Failed"])

	month := r.Bind["Month"].(dto.Month)
	var today dto.Day
	for _, d := range month.Days() {
		if d.Today {
			today = d
		}
	}
	assert.Equal(t, "2025-12-11", today.Date)
	assert.Equal(t, dto.ToneDestructive, today.Tone)
}

func TestPersonalScopeUsesOwnClassAndDegrades(t *testing.T) {
	api := &fakeAPI{}
	app, views := newApp(api)

	resp, err := app.Test(httptest.NewRequest("GET", "/app/calendar?scope=Personal", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, "C4R1", api.personalClass)
	r := views.Last()
	assert.Equal(t, controller.ScopePersonal, r.Bind["Scope"])
	assert.Equal(t, true, r.Bind["Failed"])
	assert.Empty(t, r.Bind["Month"].(dto.Month).Weeks)
	assert.Zero(t, api.academicCalls)
}

func TestCalendarExport(t *testing.T) {
	app, _ := newApp(&fakeAPI{})

	resp, err := app.Test(httptest.NewRequest("GET", "/app/calendar/export", nil), 10000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "calendar-2025-12-11.png")
}

func TestCalendarJSONMapsUpstreamFailure(t *testing.T) {
	app, _ := newApp(&fakeAPI{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/calendar?scope=personal", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/calendar", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"scope":"academic"`)
}
