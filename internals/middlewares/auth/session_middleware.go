// internals/middlewares/auth/session_middleware.go
package auth

import (
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	helper "github.com/AungS8430/schooler/internals/helpers"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
)

type SessionOpts struct {
	Signer        *helperAuth.Signer
	SecureCookies bool
}

// publicPrefixes and publicPaths never require a session. /metrics is not
// listed: counters stay behind sign-in.
var (
	publicPrefixes = []string{"/auth/", "/static/"}
	publicPaths    = map[string]bool{"/health": true}
)

func IsPublicPath(path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, p := range publicPrefixes {
		if path == strings.TrimSuffix(p, "/") || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// LoadSession hydrates Locals from the session cookie. A bad cookie is
// cleared and the request continues anonymously.
func LoadSession(o SessionOpts) fiber.Handler {
	if o.Signer == nil {
		panic("LoadSession: Signer is required")
	}
	return func(c *fiber.Ctx) error {
		theme := helperAuth.NormalizeTheme(c.Cookies(helperAuth.ThemeCookie))
		c.Locals(helperAuth.LocTheme, theme)
		c.Locals(helperAuth.LocDark, helperAuth.ResolveDark(theme, c.Get(helperAuth.ColorSchemeHint)))
		c.Set("Accept-CH", helperAuth.ColorSchemeHint)
		c.Vary(helperAuth.ColorSchemeHint)

		raw := strings.TrimSpace(c.Cookies(helperAuth.SessionCookie))
		if raw == "" {
			return c.Next()
		}

		// 1) Verify cookie
		sess, err := o.Signer.ParseSession(raw)
		if err != nil {
			log.Printf("[WARN] dropping session cookie: %v", err)
			ClearSessionCookie(c, o.SecureCookies)
			return c.Next()
		}

		// 2) Mint the API bearer for this request
		tok, err := o.Signer.APIToken(sess)
		if err != nil {
			return err
		}
		helperAuth.SetSession(c, sess)
		c.Locals(helperAuth.LocAPIToken, tok)
		return c.Next()
	}
}

// Gate is the route access rule: public paths pass, a signed-in user on
// /login goes home, everyone else without a session goes to /login.
func Gate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if IsPublicPath(path) {
			return c.Next()
		}
		_, err := helperAuth.GetSession(c)
		loggedIn := err == nil

		if path == "/login" {
			if loggedIn {
				return c.Redirect("/", fiber.StatusFound)
			}
			return c.Next()
		}
		if loggedIn {
			return c.Next()
		}
		if helper.WantsJSON(c) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "not signed in")
		}
		target := "/login"
		if c.Method() == fiber.MethodGet && path != "/" {
			target += "?next=" + url.QueryEscape(c.OriginalURL())
		}
		return c.Redirect(target, fiber.StatusFound)
	}
}

// SafeNext keeps post-login redirects on this site.
func SafeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func SetSessionCookie(c *fiber.Ctx, value string, expires time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     helperAuth.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearSessionCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     helperAuth.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
