package middlewares

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"github.com/AungS8430/schooler/internals/configs"
	"github.com/AungS8430/schooler/internals/middlewares/logger"
)

// RequestTimeout bounds the user context of every request (API fan-out and
// exports). Live streams run on their own context.
const RequestTimeout = 15 * time.Second

// IsEventStream reports whether the request asks for a live event stream.
// Buffering middlewares (compress, etag) must stay out of its way: both read
// the whole body, and a stream body never ends.
func IsEventStream(c *fiber.Ctx) bool {
	return strings.HasSuffix(c.Path(), "/progress") ||
		strings.Contains(c.Get(fiber.HeaderAccept), "text/event-stream")
}

// SetupMiddlewares installs the app-wide chain that runs before routing.
func SetupMiddlewares(app *fiber.App, cfg configs.Settings) {
	app.Use(compress.New(compress.Config{
		Level: compress.LevelDefault,
		Next:  IsEventStream,
	}))
	app.Use(etag.New(etag.Config{Next: IsEventStream}))
	app.Use(RequestID())
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware(cfg.AppTimezone))
}

// RequestID tags the request, bounds its user context and logs its timing.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), RequestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
