// internals/features/school/resources/controller/resources_controller.go
package controller

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/features/school/resources/model"
	"github.com/AungS8430/schooler/internals/features/school/resources/service"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
)

type API interface {
	Resources(ctx context.Context, cred schoolapi.Credentials) ([]model.Resource, error)
}

type ResourcesController struct {
	API API
}

func NewResourcesController(api API) *ResourcesController {
	return &ResourcesController{API: api}
}

// GET /app/resources?q=&category=
func (h *ResourcesController) List(c *fiber.Ctx) error {
	all, err := h.API.Resources(c.UserContext(), helperAuth.APICredentials(c))
	schoolapi.Degrade("resources", err)

	q := strings.TrimSpace(c.Query("q"))
	category := strings.TrimSpace(c.Query("category"))

	return c.Render("pages/resources", fiber.Map{
		"Title":      "Resources",
		"Nav":        "resources",
		"Resources":  service.Filter(all, q, category),
		"Categories": service.Categories(all),
		"Category":   category,
		"Query":      q,
		"Failed":     err != nil,
	}, "layouts/main")
}
