package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/utils"
)

const (
	CSRFContextKey = "csrf"
	CSRFFormField  = "_csrf"
	CSRFCookieName = "schooler_csrf"
)

// CSRFMiddleware protects form posts with a double-submit cookie; forms
// carry the token from Locals("csrf") in a hidden _csrf field.
func CSRFMiddleware(secure bool) fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "form:" + CSRFFormField,
		CookieName:     CSRFCookieName,
		CookieSameSite: "Lax",
		CookieSecure:   secure,
		CookieHTTPOnly: true,
		Expiration:     2 * time.Hour,
		ContextKey:     CSRFContextKey,
		KeyGenerator:   utils.UUID,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fiber.NewError(fiber.StatusForbidden, "Your form expired. Please reload the page and try again.")
		},
	})
}
