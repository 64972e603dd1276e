// internals/features/school/schedule/timetable/controller/timetable_controller.go
package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/features/school/schedule/export"
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/dto"
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/service"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
	helper "github.com/AungS8430/schooler/internals/helpers"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
	authMw "github.com/AungS8430/schooler/internals/middlewares/auth"
)

// API is what the schedule pages read from the school API.
type API interface {
	service.Fetcher
	authMw.PermissionSource
	Classes(ctx context.Context, cred schoolapi.Credentials, grade, department string) ([]string, error)
}

type TimetableController struct {
	API      API
	Store    *service.SelectionStore
	Exporter *export.Exporter
	Loc      *time.Location
	Now      func() time.Time
	Interval time.Duration   // live stream tick
	Done     <-chan struct{} // closed on shutdown to end live streams
}

func NewTimetableController(api API, store *service.SelectionStore, exp *export.Exporter, loc *time.Location) *TimetableController {
	if loc == nil {
		loc = time.UTC
	}
	return &TimetableController{
		API:      api,
		Store:    store,
		Exporter: exp,
		Loc:      loc,
		Now:      time.Now,
		Interval: service.LiveInterval,
	}
}

func (h *TimetableController) now() time.Time { return h.Now().In(h.Loc) }

/* =========================
   PAGE
========================= */

// GET /app/schedule?class=
func (h *TimetableController) Page(c *fiber.Ctx) error {
	cred := helperAuth.APICredentials(c)

	// 1) class list + permissions in parallel
	var (
		wg       sync.WaitGroup
		classes  []string
		perms    authModel.Permissions
		classErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		classes, classErr = h.API.Classes(c.UserContext(), cred, "", "")
	}()
	go func() {
		defer wg.Done()
		var err error
		if perms, err = h.API.Permissions(c.UserContext(), cred); err != nil {
			schoolapi.Degrade("permissions", err)
		}
	}()
	wg.Wait()
	schoolapi.Degrade("classes", classErr)

	// 2) selection
	sel, err := h.Store.Ensure(c.UserContext(), cred, h.preferredClass(c, cred.Subject, perms, classes))
	if err != nil {
		schoolapi.Degrade("timetable", err)
	}

	grid := service.BuildGrid(sel.Slots, sel.Timetable, service.GridOptions{})
	return c.Render("pages/schedule", fiber.Map{
		"Title":    "Class Schedule",
		"Nav":      "schedule",
		"Classes":  classes,
		"Selected": sel.Class,
		"Grid":     grid,
		"Empty":    sel.Timetable.IsEmpty(),
		"Failed":   err != nil,
		"Flash":    helper.TakeFlash(c),
	}, "layouts/main")
}

// preferredClass: query, then the current selection, then the user's own
// class, then the first known class.
func (h *TimetableController) preferredClass(c *fiber.Ctx, subject string, perms authModel.Permissions, classes []string) string {
	if q := strings.TrimSpace(c.Query("class")); q != "" {
		return q
	}
	if cur, ok := h.Store.Current(subject); ok {
		return cur.Class
	}
	if p := strings.TrimSpace(perms.Class); p != "" {
		return p
	}
	if len(classes) > 0 {
		return classes[0]
	}
	return ""
}

/* =========================
   SELECT
========================= */

// POST /app/schedule/select
func (h *TimetableController) Select(c *fiber.Ctx) error {
	class := strings.TrimSpace(c.FormValue("class"))
	if class == "" {
		helper.SetFlash(c, "Select a class.")
		return c.Redirect("/app/schedule", fiber.StatusSeeOther)
	}

	_, err := h.Store.Select(c.UserContext(), helperAuth.APICredentials(c), class)
	switch {
	case errors.Is(err, service.ErrSuperseded):
		// a newer selection already won; show that one
	case err != nil:
		schoolapi.Degrade("timetable "+class, err)
		helper.SetFlash(c, "Couldn't load the schedule for "+class+".")
	}
	return c.Redirect("/app/schedule", fiber.StatusSeeOther)
}

/* =========================
   EXPORT
========================= */

// GET /app/schedule/export?class=&format=
func (h *TimetableController) Export(c *fiber.Ctx) error {
	sel, err := h.Store.Peek(c.UserContext(), helperAuth.APICredentials(c), c.Query("class"))
	if err != nil {
		return err
	}

	dark, _ := c.Locals(helperAuth.LocDark).(bool)
	res, err := h.Exporter.Export(c.UserContext(), export.Request{
		Kind:    export.KindSchedule,
		Subject: sel.Class,
		Day:     h.now(),
		Format:  export.ParseFormat(c.Query("format")),
		Target:  export.Container(export.KindSchedule, dark, 0),
		Scene: export.TimetableScene{
			Grid:  service.BuildGrid(sel.Slots, sel.Timetable, service.GridOptions{}),
			Title: "Class schedule for " + sel.Class,
		},
	})
	if err != nil {
		return export.Fail(c, err)
	}
	return export.Deliver(c, res)
}

/* =========================
   LIVE
========================= */

// GET /app/schedule/progress (text/event-stream)
func (h *TimetableController) Progress(c *fiber.Ctx) error {
	sel, err := h.Store.Peek(c.UserContext(), helperAuth.APICredentials(c), c.Query("class"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	done := h.Done
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if done != nil {
			go func() {
				select {
				case <-done:
					cancel()
				case <-ctx.Done():
				}
			}()
		}
		h.stream(ctx, cancel, w, sel)
	})
	return nil
}

// stream writes one event per tick until ctx ends or the client goes away.
func (h *TimetableController) stream(ctx context.Context, cancel context.CancelFunc, w *bufio.Writer, sel service.Selection) {
	service.Watch(ctx, h.Interval, h.now, func(now time.Time) {
		if err := writeEvent(w, "progress", service.Tick(sel.Slots, sel.Timetable, now)); err != nil {
			log.Printf("[INFO] live stream closed: %v", err)
			cancel()
		}
	})
}

func writeEvent(w *bufio.Writer, name string, ev dto.ProgressEvent) error {
	raw, err := sonic.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, raw); err != nil {
		return err
	}
	return w.Flush()
}

/* =========================
   JSON
========================= */

// GET /api/timetable?class=&live=1
func (h *TimetableController) JSON(c *fiber.Ctx) error {
	sel, err := h.Store.Peek(c.UserContext(), helperAuth.APICredentials(c), c.Query("class"))
	if err != nil {
		status := helper.StatusOf(err)
		return helper.JsonError(c, status, helper.PublicMessage(err, status))
	}
	live := c.QueryBool("live", false)
	grid := service.BuildGrid(sel.Slots, sel.Timetable, service.GridOptions{Dynamic: live, Now: h.now()})
	return helper.JsonOK(c, "ok", fiber.Map{
		"class": sel.Class,
		"grid":  grid,
	})
}
