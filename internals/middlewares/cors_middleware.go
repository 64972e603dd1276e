// internals/middlewares/cors_middleware.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware allows the configured origins (comma separated) on /api.
func CorsMiddleware(origins string) fiber.Handler {
	list := make([]string, 0)
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			list = append(list, o)
		}
	}
	if len(list) == 0 {
		list = append(list, "http://localhost:3000")
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(list, ", "),
		AllowMethods:     "GET,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	})
}
