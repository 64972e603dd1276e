package helper

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const ErrorView = "pages/error"

// statusCoder is implemented by upstream API errors.
type statusCoder interface {
	StatusCode() int
}

// StatusOf maps an error to the status the portal answers with. Upstream
// 5xx and unknown upstream codes become 502.
func StatusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		switch code := sc.StatusCode(); code {
		case fiber.StatusUnauthorized, fiber.StatusForbidden, fiber.StatusNotFound,
			fiber.StatusConflict, fiber.StatusUnprocessableEntity, fiber.StatusBadRequest:
			return code
		default:
			return fiber.StatusBadGateway
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

// PublicMessage is what users get to see for err.
func PublicMessage(err error, status int) string {
	var fe *fiber.Error
	if errors.As(err, &fe) && strings.TrimSpace(fe.Message) != "" {
		return fe.Message
	}
	switch status {
	case fiber.StatusUnauthorized:
		return "Your session has expired. Please sign in again."
	case fiber.StatusForbidden:
		return "You don't have permission to do that."
	case fiber.StatusNotFound:
		return "We couldn't find what you were looking for."
	case fiber.StatusBadGateway, fiber.StatusGatewayTimeout:
		return "The school service is not responding right now. Please try again."
	}
	return defaultMessage(status)
}

// WantsJSON is true for /api routes and JSON-only clients.
func WantsJSON(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/api/") {
		return true
	}
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// ErrorHandler renders errors as the error page, or the JSON error shape
// for API callers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	msg := PublicMessage(err, status)
	if status >= 500 {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	}

	if WantsJSON(c) {
		return JsonError(c, status, msg)
	}
	c.Status(status)
	if rerr := c.Render(ErrorView, fiber.Map{
		"Title":   defaultMessage(status),
		"Status":  status,
		"Message": msg,
	}, "layouts/main"); rerr != nil {
		log.Printf("[ERROR] rendering error page: %v", rerr)
		return c.Status(status).SendString(msg)
	}
	return nil
}
