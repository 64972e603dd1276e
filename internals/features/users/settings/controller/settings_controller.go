// internals/features/users/settings/controller/settings_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	helper "github.com/AungS8430/schooler/internals/helpers"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
)

const themeCookieTTL = 365 * 24 * time.Hour

// ThemeOption is one radio button on the settings page.
type ThemeOption struct {
	Value string
	Label string
}

var ThemeOptions = []ThemeOption{
	{helperAuth.ThemeLight, "Light"},
	{helperAuth.ThemeDark, "Dark"},
	{helperAuth.ThemeSystem, "System"},
}

type SettingsController struct {
	SecureCookies bool
}

func NewSettingsController(secureCookies bool) *SettingsController {
	return &SettingsController{SecureCookies: secureCookies}
}

// GET /app/settings
func (h *SettingsController) Page(c *fiber.Ctx) error {
	return c.Render("pages/settings", fiber.Map{
		"Title":   "Settings",
		"Nav":     "settings",
		"Themes":  ThemeOptions,
		"Current": helperAuth.NormalizeTheme(c.Cookies(helperAuth.ThemeCookie)),
		"Flash":   helper.TakeFlash(c),
	}, "layouts/main")
}

// POST /app/settings
func (h *SettingsController) Save(c *fiber.Ctx) error {
	theme := helperAuth.NormalizeTheme(c.FormValue("theme"))
	c.Cookie(&fiber.Cookie{
		Name:     helperAuth.ThemeCookie,
		Value:    theme,
		Path:     "/",
		Expires:  time.Now().Add(themeCookieTTL),
		Secure:   h.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	helper.SetFlash(c, "Theme updated.")
	return c.Redirect("/app/settings", fiber.StatusSeeOther)
}
