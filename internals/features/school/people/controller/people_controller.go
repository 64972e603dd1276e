// internals/features/school/people/controller/people_controller.go
package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/features/school/people/dto"
	"github.com/AungS8430/schooler/internals/features/school/people/model"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
)

type API interface {
	People(ctx context.Context, cred schoolapi.Credentials, f model.Filter) ([]model.Person, error)
	Grades(ctx context.Context, cred schoolapi.Credentials) ([]model.Grade, error)
	Classes(ctx context.Context, cred schoolapi.Credentials, grade, department string) ([]string, error)
}

type PeopleController struct {
	API API
}

func NewPeopleController(api API) *PeopleController {
	return &PeopleController{API: api}
}

/* =========================
   PEOPLE
========================= */

// GET /app/people?q=&grade=&class=
func (h *PeopleController) People(c *fiber.Ctx) error {
	cred := helperAuth.APICredentials(c)
	f := model.Filter{
		Grade:  strings.TrimSpace(c.Query("grade")),
		Class:  strings.TrimSpace(c.Query("class")),
		Search: strings.TrimSpace(c.Query("q")),
	}

	var (
		wg                       sync.WaitGroup
		grades                   []model.Grade
		classes                  []string
		people                   []model.Person
		gradeErr, classErr, pErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		grades, gradeErr = h.API.Grades(c.UserContext(), cred)
	}()
	go func() {
		defer wg.Done()
		classes, classErr = h.API.Classes(c.UserContext(), cred, f.Grade, "")
	}()
	go func() {
		defer wg.Done()
		people, pErr = h.API.People(c.UserContext(), cred, f)
	}()
	wg.Wait()
	schoolapi.Degrade("grades", gradeErr)
	schoolapi.Degrade("classes", classErr)
	schoolapi.Degrade("people", pErr)

	return c.Render("pages/people", fiber.Map{
		"Title":   "People",
		"Nav":     "people",
		"Grades":  grades,
		"Classes": classes,
		"People":  dto.FromPeople(people),
		"Grade":   f.Grade,
		"Class":   f.Class,
		"Query":   f.Search,
		"Failed":  pErr != nil,
	}, "layouts/main")
}

/* =========================
   CLASSES
========================= */

// GET /app/classes?grade=
func (h *PeopleController) Classes(c *fiber.Ctx) error {
	cred := helperAuth.APICredentials(c)

	// 1) grades first; the selected grade defaults to the first one
	grades, err := h.API.Grades(c.UserContext(), cred)
	schoolapi.Degrade("grades", err)

	grade := strings.TrimSpace(c.Query("grade"))
	if grade == "" && len(grades) > 0 {
		grade = grades[0].Key
	}

	// 2) classes for that grade
	classes, cErr := h.API.Classes(c.UserContext(), cred, grade, "")
	schoolapi.Degrade("classes", cErr)

	return c.Render("pages/classes", fiber.Map{
		"Title":      "Classes",
		"Nav":        "classes",
		"Grades":     grades,
		"Grade":      grade,
		"GradeLabel": dto.GradeLabel(grades, grade),
		"Classes":    classes,
		"Failed":     cErr != nil,
	}, "layouts/main")
}
