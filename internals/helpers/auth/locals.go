package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
)

// Locals keys set by the session middleware.
const (
	LocSession = "session"
	LocUserID  = "user_id"
	LocName    = "user_name"
	LocEmail   = "user_email"
	LocImage   = "user_image"
	LocTheme   = "theme"
	LocDark    = "dark"
)

// SetSession stores sess in Locals; the flat keys are read by the views.
func SetSession(c *fiber.Ctx, sess Session) {
	c.Locals(LocSession, sess)
	c.Locals(LocUserID, sess.UserID)
	c.Locals(LocName, sess.Name)
	c.Locals(LocEmail, sess.Email)
	c.Locals(LocImage, sess.Image)
}

// GetSession returns the signed-in user or 401.
func GetSession(c *fiber.Ctx) (Session, error) {
	if s, ok := c.Locals(LocSession).(Session); ok && strings.TrimSpace(s.UserID) != "" {
		return s, nil
	}
	return Session{}, fiber.NewError(fiber.StatusUnauthorized, "not signed in")
}

// GetUserIDFromToken is a shortcut for handlers that only need the id.
func GetUserIDFromToken(c *fiber.Ctx) (string, error) {
	s, err := GetSession(c)
	if err != nil {
		return "", err
	}
	return s.UserID, nil
}

// LocAPIToken holds the bearer minted for this request.
const LocAPIToken = "api_token"

// APICredentials identifies the signed-in user to the school API.
func APICredentials(c *fiber.Ctx) schoolapi.Credentials {
	cred := schoolapi.Credentials{}
	if s, ok := c.Locals(LocSession).(Session); ok {
		cred.Subject = s.UserID
	}
	if tok, ok := c.Locals(LocAPIToken).(string); ok {
		cred.Token = tok
	}
	return cred
}
