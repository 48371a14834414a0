package handlers

import (
	applog "ammanroofing/internal/log"
	"ammanroofing/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin guards the server-rendered console; unauthenticated requests
// are redirected away before anything is fetched.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/admin/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Redirect("/admin/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdminAPI guards state-changing JSON endpoints. The session is
// validated server-side on every call; a client-held flag is never trusted.
func RequireAdminAPI(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.api", map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not authorized"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
