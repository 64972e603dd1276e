package controller_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AungS8430/schooler/internals/features/users/settings/controller"
	routes "github.com/AungS8430/schooler/internals/features/users/settings/route"
	helper "github.com/AungS8430/schooler/internals/helpers"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
	"github.com/AungS8430/schooler/internals/helpers/testkit"
)

func TestSaveThemeSetsCookie(t *testing.T) {
	app := testkit.App(&testkit.Views{}, helper.ErrorHandler)
	routes.SettingsRoutes(app.Group("/app"), controller.NewSettingsController(true))

	req := httptest.NewRequest("POST", "/app/settings", strings.NewReader("theme=Dark"))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/app/settings", resp.Header.Get("Location"))

	var theme string
	for _, ck := range resp.Cookies() {
		if ck.Name == helperAuth.ThemeCookie {
			theme = ck.Value
			assert.True(t, ck.Secure)
		}
	}
	assert.Equal(t, helperAuth.ThemeDark, theme)
}

func TestUnknownThemeFallsBackToSystem(t *testing.T) {
	views := &testkit.Views{}
	app := testkit.App(views, helper.ErrorHandler)
	routes.SettingsRoutes(app.Group("/app"), controller.NewSettingsController(false))

	req := httptest.NewRequest("GET", "/app/settings", nil)
	req.Header.Set("Cookie", helperAuth.ThemeCookie+"=purple")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	r := views.Last()
	assert.Equal(t, "pages/settings", r.Name)
	assert.Equal(t, helperAuth.ThemeSystem, r.Bind["Current"])
	assert.Len(t, r.Bind["Themes"], 3)
}
