// internals/features/home/dashboard/controller/home_controller.go
package controller

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	annDTO "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/dto"
	annModel "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/model"
	annService "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/service"
	ttService "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/service"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
	authMw "github.com/AungS8430/schooler/internals/middlewares/auth"
)

// RecentAnnouncements is how many announcements the home page shows.
const RecentAnnouncements = 5

type API interface {
	annService.Source
	ttService.Fetcher
	authMw.PermissionSource
}

type HomeController struct {
	API API
	Loc *time.Location
	Now func() time.Time
}

func NewHomeController(api API, loc *time.Location) *HomeController {
	if loc == nil {
		loc = time.UTC
	}
	return &HomeController{API: api, Loc: loc, Now: time.Now}
}

// GET /
func (h *HomeController) Home(c *fiber.Ctx) error {
	cred := helperAuth.APICredentials(c)
	ctx := c.UserContext()

	// 1) permissions and announcements in parallel; the timetable needs the class
	var (
		wg      sync.WaitGroup
		perms   authModel.Permissions
		feed    []annModel.Announcement
		feedErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if perms, err = h.API.Permissions(ctx, cred); err != nil {
			schoolapi.Degrade("permissions", err)
		}
	}()
	go func() {
		defer wg.Done()
		feed, feedErr = annService.Feed(ctx, h.API, cred, "", RecentAnnouncements)
	}()
	wg.Wait()
	schoolapi.Degrade("announcements", feedErr)
	c.Locals(authMw.LocPermissions, perms)

	// 2) live timetable for the user's own class
	view := fiber.Map{
		"Title":         "Home",
		"Nav":           "home",
		"Class":         perms.Class,
		"Announcements": annDTO.FromModels(feed, h.Loc),
		"FeedFailed":    feedErr != nil,
	}
	if perms.Class != "" {
		sel, err := ttService.Load(ctx, h.API, cred, perms.Class)
		if err != nil {
			schoolapi.Degrade("timetable "+perms.Class, err)
		} else {
			view["Grid"] = ttService.BuildGrid(sel.Slots, sel.Timetable, ttService.GridOptions{
				Dynamic: true,
				Now:     h.Now().In(h.Loc),
			})
		}
	}
	return c.Render("pages/home", view, "layouts/main")
}
