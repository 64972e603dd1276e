// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
	"github.com/AungS8430/schooler/internals/features/users/auth/service"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
	authMw "github.com/AungS8430/schooler/internals/middlewares/auth"
)

const (
	stateCookie = "schooler_oauth_state"
	nextCookie  = "schooler_oauth_next"
	stateTTL    = 10 * time.Minute
)

// Error codes shown on the login page.
const (
	LoginErrAccessDenied = "AccessDenied"
	LoginErrState        = "OAuthState"
	LoginErrCallback     = "OAuthCallback"
	LoginErrAccount      = "AccountNotLinked"
)

var loginMessages = map[string]string{
	LoginErrAccessDenied: "Sign in with your verified school Google account.",
	LoginErrState:        "Your sign-in request expired. Please try again.",
	LoginErrCallback:     "Google sign-in failed. Please try again.",
	LoginErrAccount:      "This Google account is linked to another user.",
}

// AccountUpserter links a Google account to a school API user.
type AccountUpserter interface {
	UpsertOAuthAccount(ctx context.Context, in authModel.OAuthUpsert) (authModel.AccountRef, error)
}

type AuthController struct {
	OAuth         service.Exchanger
	Verifier      service.IDTokenVerifier
	Accounts      AccountUpserter
	Signer        *helperAuth.Signer
	AllowedDomain string
	SecureCookies bool
}

func NewAuthController(o service.Exchanger, v service.IDTokenVerifier, a AccountUpserter, s *helperAuth.Signer, allowedDomain string, secure bool) *AuthController {
	return &AuthController{
		OAuth:         o,
		Verifier:      v,
		Accounts:      a,
		Signer:        s,
		AllowedDomain: allowedDomain,
		SecureCookies: secure,
	}
}

/* =========================
   LOGIN PAGE
========================= */

func (ac *AuthController) LoginPage(c *fiber.Ctx) error {
	code := c.Query("error")
	msg := ""
	if code != "" {
		if m, ok := loginMessages[code]; ok {
			msg = m
		} else {
			msg = loginMessages[LoginErrCallback]
		}
	}
	return c.Render("pages/login", fiber.Map{
		"Title":  "Sign in",
		"Error":  msg,
		"Domain": ac.AllowedDomain,
		"Next":   authMw.SafeNext(c.Query("next")),
	})
}

/* =========================
   GOOGLE REDIRECT
========================= */

func (ac *AuthController) GoogleRedirect(c *fiber.Ctx) error {
	state := uuid.NewString()
	ac.shortCookie(c, stateCookie, state, stateTTL)
	ac.shortCookie(c, nextCookie, authMw.SafeNext(c.Query("next")), stateTTL)
	return c.Redirect(ac.OAuth.AuthCodeURL(state), fiber.StatusFound)
}

/* =========================
   GOOGLE CALLBACK
========================= */

func (ac *AuthController) GoogleCallback(c *fiber.Ctx) error {
	// 1) State check
	want := strings.TrimSpace(c.Cookies(stateCookie))
	next := authMw.SafeNext(c.Cookies(nextCookie))
	ac.shortCookie(c, stateCookie, "", -time.Hour)
	ac.shortCookie(c, nextCookie, "", -time.Hour)
	if want == "" || want != c.Query("state") {
		return ac.fail(c, LoginErrState, errors.New("state mismatch"))
	}
	if e := c.Query("error"); e != "" {
		return ac.fail(c, LoginErrAccessDenied, errors.New("google: "+e))
	}

	// 2) Code → tokens
	ex, err := ac.OAuth.Exchange(c.UserContext(), c.Query("code"))
	if err != nil {
		return ac.fail(c, LoginErrCallback, err)
	}

	// 3) Verify ID token + domain
	id, err := ac.Verifier.Verify(ex.IDToken)
	if err != nil {
		return ac.fail(c, LoginErrCallback, err)
	}
	if err := service.CheckIdentity(id, ac.AllowedDomain); err != nil {
		return ac.fail(c, LoginErrAccessDenied, err)
	}

	// 4) Link the account in the school API
	ref, err := ac.Accounts.UpsertOAuthAccount(c.UserContext(), authModel.OAuthUpsert{
		Provider:          "google",
		ProviderAccountID: id.Subject,
		Email:             strings.ToLower(id.Email),
		Name:              id.Name,
		Image:             id.Picture,
		Tokens:            ex.Tokens,
	})
	if errors.Is(err, schoolapi.ErrConflict) {
		return ac.fail(c, LoginErrAccount, err)
	}
	if err != nil {
		return ac.fail(c, LoginErrCallback, err)
	}
	if strings.TrimSpace(ref.ID) == "" {
		return ac.fail(c, LoginErrCallback, errors.New("upsert returned no user id"))
	}

	// 5) Session cookie
	raw, exp, err := ac.Signer.IssueSession(helperAuth.Session{
		UserID: ref.ID,
		Email:  strings.ToLower(id.Email),
		Name:   id.Name,
		Image:  id.Picture,
	})
	if err != nil {
		return err
	}
	authMw.SetSessionCookie(c, raw, exp, ac.SecureCookies)
	log.Printf("[INFO] signed in user=%s", ref.ID)
	return c.Redirect(next, fiber.StatusFound)
}

/* =========================
   LOGOUT
========================= */

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	authMw.ClearSessionCookie(c, ac.SecureCookies)
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (ac *AuthController) fail(c *fiber.Ctx, code string, err error) error {
	log.Printf("[WARN] google sign-in: %s: %v", code, err)
	return c.Redirect("/login?error="+code, fiber.StatusFound)
}

func (ac *AuthController) shortCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/auth",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   ac.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
