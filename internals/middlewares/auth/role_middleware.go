package auth

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
	helperAuth "github.com/AungS8430/schooler/internals/helpers/auth"
)

const LocPermissions = "permissions"

// PermissionSource is the part of the API client the role guard needs.
type PermissionSource interface {
	Permissions(ctx context.Context, cred schoolapi.Credentials) (authModel.Permissions, error)
}

// LoadPermissions fetches the user's permissions into Locals. Failures
// leave the user with no role rather than failing the page.
func LoadPermissions(c *fiber.Ctx, src PermissionSource) authModel.Permissions {
	if p, ok := c.Locals(LocPermissions).(authModel.Permissions); ok {
		return p
	}
	p, err := src.Permissions(c.UserContext(), helperAuth.APICredentials(c))
	if err != nil {
		schoolapi.Degrade("permissions", err)
		p = authModel.Permissions{}
	}
	c.Locals(LocPermissions, p)
	return p
}

// OnlyRoles lets the request through when the user's API role is one of roles.
func OnlyRoles(src PermissionSource, customForbiddenMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := LoadPermissions(c, src)
		for _, allowed := range roles {
			if strings.EqualFold(strings.TrimSpace(p.Role), allowed) {
				return c.Next()
			}
		}

		log.Printf("[INFO] role %q denied on %s", p.Role, c.Path())
		if customForbiddenMessage == "" {
			customForbiddenMessage = "You don't have permission to do that."
		}
		return fiber.NewError(fiber.StatusForbidden, customForbiddenMessage)
	}
}
