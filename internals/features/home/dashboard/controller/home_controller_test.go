package controller_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/features/home/dashboard/controller"
	routes "github.com/AungS8430/schooler/internals/features/home/dashboard/route"
	annDTO "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/dto"
	annModel "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/model"
	ttDTO "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/dto"
	ttModel "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
	helper "github.com/AungS8430/schooler/internals/helpers"
	"github.com/AungS8430/schooler/internals/helpers/clock"
	"github.com/AungS8430/schooler/internals/helpers/testkit"
)

type fakeAPI struct {
	class    string
	ids      []int
	ttClass  string
	permsErr error
}

func (f *fakeAPI) AnnouncementIDs(ctx context.Context, cred schoolapi.Credentials, q string) ([]int, error) {
	return f.ids, nil
}

func (f *fakeAPI) Announcement(ctx context.Context, cred schoolapi.Credentials, id int) (annModel.Announcement, error) {
	return annModel.Announcement{ID: id, Title: "News", Date: "2025-03-01", Priority: 3}, nil
}

func (f *fakeAPI) Slots(ctx context.Context, cred schoolapi.Credentials) ([]ttModel.Slot, error) {
	return []ttModel.Slot{{ID: "s1", Start: clock.MustParse("08:00"), End: clock.MustParse("09:00")}}, nil
}

func (f *fakeAPI) Timetable(ctx context.Context, cred schoolapi.Credentials, class string) (ttModel.Timetable, error) {
	f.ttClass = class
	return ttModel.Timetable{time.Monday: {{ID: "m", Title: "Math", SlotIDs: []string{"s1"}}}}, nil
}

func (f *fakeAPI) Permissions(ctx context.Context, cred schoolapi.Credentials) (authModel.Permissions, error) {
	return authModel.Permissions{Role: "student", Class: f.class}, f.permsErr
}

func render(t *testing.T, api *fakeAPI) testkit.Render {
	t.Helper()
	views := &testkit.Views{}
	app := testkit.App(views, helper.ErrorHandler)
	ctl := controller.NewHomeController(api, time.UTC)
	ctl.Now = func() time.Time { return time.Date(2025, 3, 3, 8, 30, 0, 0, time.UTC) }
	routes.HomeRoutes(app, ctl)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	return views.Last()
}

func TestHomeShowsFiveAnnouncementsAndLiveGrid(t *testing.T) {
	api := &fakeAPI{class: "C2R1", ids: []int{9, 8, 7, 6, 5, 4, 3}}
	r := render(t, api)

	assert.Equal(t, "pages/home", r.Name)
	cards := r.Bind["Announcements"].([]annDTO.Card)
	require.Len(t, cards, controller.RecentAnnouncements)
	assert.Equal(t, 9, cards[0].ID)
	assert.Equal(t, 5, cards[4].ID)

	assert.Equal(t, "C2R1", api.ttClass)
	grid := r.Bind["Grid"].(ttDTO.Grid)
	assert.True(t, grid.Dynamic)
	assert.Equal(t, "s1", grid.CurrentSlotID)
	require.NotNil(t, grid.Progress)
	assert.InDelta(t, 50, *grid.Progress, 0.01)
}

func TestHomeWithoutClassSkipsTimetable(t *testing.T) {
	api := &fakeAPI{permsErr: errors.New("down")}
	r := render(t, api)

	assert.Empty(t, api.ttClass)
	assert.NotContains(t, r.Bind, "Grid")
	assert.Empty(t, r.Bind["Announcements"])
}
