package export

import (
	"encoding/base64"
	"errors"
	"html/template"
	"regexp"

	"github.com/gofiber/fiber/v2"
)

var mobileUA = regexp.MustCompile(`(?i)iPhone|iPad|iPod|Android`)

// IsMobile reports whether the user agent gets the open-in-tab page.
func IsMobile(userAgent string) bool { return mobileUA.MatchString(userAgent) }

// DataURL embeds data for an <img src>.
func DataURL(contentType string, data []byte) template.URL {
	return template.URL("data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data))
}

// MobileView is the template rendered for mobile clients.
const MobileView = "pages/export_image"

// Deliver sends a finished export: mobile clients get a page showing the
// image (long-press to save), others a download.
func Deliver(c *fiber.Ctx, res Result) error {
	if IsMobile(c.Get(fiber.HeaderUserAgent)) {
		return c.Render(MobileView, fiber.Map{
			"Filename": res.Filename,
			"Src":      DataURL(res.ContentType, res.Data),
		})
	}
	c.Attachment(res.Filename)
	c.Set(fiber.HeaderContentType, res.ContentType)
	return c.Send(res.Data)
}

// Fail answers a failed export with the alert text.
func Fail(c *fiber.Ctx, err error) error {
	var fe *FailedError
	if errors.As(err, &fe) {
		return fiber.NewError(fiber.StatusInternalServerError, fe.Alert())
	}
	return err
}
