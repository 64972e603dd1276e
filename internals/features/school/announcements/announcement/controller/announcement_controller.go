// internals/features/school/announcements/announcement/controller/announcement_controller.go
package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	annDTO "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/dto"
	"github.com/AungS8430/schooler/internals/features/school/announcements/announcement/service"
	helper "github.com/AungS8430/schooler/internals/helpers"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
	authMw "github.com/AungS8430/schooler/internals/middlewares/auth"
)

// API is everything the announcement pages need from the school API.
type API interface {
	service.Source
	service.Writer
	authMw.PermissionSource
}

type AnnouncementController struct {
	API API
	Loc *time.Location
}

func NewAnnouncementController(api API, loc *time.Location) *AnnouncementController {
	if loc == nil {
		loc = time.UTC
	}
	return &AnnouncementController{API: api, Loc: loc}
}

var validateAnnouncement = validator.New()

// ===================== LIST =====================
// GET /app/announcements?q=
func (h *AnnouncementController) List(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	cred := helperAuth.APICredentials(c)

	// 1) ids + details (concurrently), degrade on failure
	list, err := service.Feed(c.UserContext(), h.API, cred, q, 0)
	if err != nil {
		schoolapi.Degrade("announcements", err)
	}

	// 2) create button only for publishers
	perms := authMw.LoadPermissions(c, h.API)

	return c.Render("pages/announcements", fiber.Map{
		"Title":      "Announcements",
		"Nav":        "announcements",
		"Query":      q,
		"Cards":      annDTO.FromModels(list, h.Loc),
		"CanPublish": perms.CanPublish(),
		"Failed":     err != nil,
		"Flash":      helper.TakeFlash(c),
	}, "layouts/main")
}

// ===================== DETAIL =====================
// GET /app/announcements/:id
func (h *AnnouncementController) Detail(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.API.Announcement(c.UserContext(), helperAuth.APICredentials(c), id)
	if err != nil {
		if errors.Is(err, schoolapi.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Announcement not found.")
		}
		return err
	}
	viewer, _ := helperAuth.GetUserIDFromToken(c)

	return c.Render("pages/announcement_detail", fiber.Map{
		"Title":        a.Title,
		"Nav":          "announcements",
		"Announcement": annDTO.NewDetail(a, viewer, h.Loc),
		"Flash":        helper.TakeFlash(c),
	}, "layouts/main")
}

// ===================== CREATE =====================
// GET /app/announcements/create
func (h *AnnouncementController) CreateForm(c *fiber.Ctx) error {
	return h.renderForm(c, fiber.StatusOK, annDTO.CreateAnnouncementRequest{}, nil, "")
}

// POST /app/announcements/create
func (h *AnnouncementController) Create(c *fiber.Ctx) error {
	// 1) Parse + validate
	var req annDTO.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderForm(c, fiber.StatusBadRequest, req, nil, "Invalid form data.")
	}
	req.Normalize()
	if err := validateAnnouncement.Struct(req); err != nil {
		return h.renderForm(c, fiber.StatusUnprocessableEntity, req, helper.FieldErrors(err), "")
	}

	// 2) API
	created, err := h.API.CreateAnnouncement(c.UserContext(), helperAuth.APICredentials(c), req.ToModel())
	switch {
	case errors.Is(err, schoolapi.ErrForbidden):
		return h.renderForm(c, fiber.StatusForbidden, req, nil, "You don't have permission to create announcements.")
	case err != nil:
		log.Printf("[WARN] creating announcement: %v", err)
		return h.renderForm(c, fiber.StatusBadGateway, req, nil, "Failed to create the announcement. Please try again.")
	}

	helper.SetFlash(c, "Announcement published.")
	if created.ID == 0 {
		return c.Redirect("/app/announcements", fiber.StatusSeeOther)
	}
	return c.Redirect("/app/announcements/"+strconv.Itoa(created.ID), fiber.StatusSeeOther)
}

// ===================== DELETE =====================
// POST /app/announcements/:id/delete
func (h *AnnouncementController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	back := "/app/announcements/" + strconv.Itoa(id)

	err = h.API.DeleteAnnouncement(c.UserContext(), helperAuth.APICredentials(c), id)
	switch {
	case errors.Is(err, schoolapi.ErrForbidden):
		helper.SetFlash(c, "Only the author can delete this announcement.")
		return c.Redirect(back, fiber.StatusSeeOther)
	case errors.Is(err, schoolapi.ErrNotFound):
		helper.SetFlash(c, "That announcement no longer exists.")
	case err != nil:
		log.Printf("[WARN] deleting announcement %d: %v", id, err)
		helper.SetFlash(c, "Failed to delete the announcement. Please try again.")
		return c.Redirect(back, fiber.StatusSeeOther)
	default:
		helper.SetFlash(c, "Announcement deleted.")
	}
	return c.Redirect("/app/announcements", fiber.StatusSeeOther)
}

func (h *AnnouncementController) renderForm(c *fiber.Ctx, status int, req annDTO.CreateAnnouncementRequest, fieldErrors map[string][]string, msg string) error {
	return c.Status(status).Render("pages/announcement_create", fiber.Map{
		"Title":      "New announcement",
		"Nav":        "announcements",
		"Form":       req,
		"Priorities": annDTO.PriorityOptions(req.Priority),
		"Errors":     fieldErrors,
		"Error":      msg,
	}, "layouts/main")
}

func parseID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusNotFound, "Announcement not found.")
	}
	return id, nil
}
