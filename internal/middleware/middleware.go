package middleware

import (
	"strings"

	"recipe-box/domain"
	"recipe-box/internal/api/presenters"
	"recipe-box/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const SessionCookie = "session_token"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(authService auth.AuthService) fiber.Handler
		PageAuthMiddleware(authService auth.AuthService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	})
}

// AuthMiddleware guards API routes. Requests without a valid session get a
// 401 and the handler never runs.
func (m *middleware) AuthMiddleware(authService auth.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authService.GetSession(c.Context(), SessionToken(c))
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrSessionNotFound)
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_name", user.Name)
		c.Locals("user_email", user.Email)
		return c.Next()
	}
}

// PageAuthMiddleware guards server-rendered pages. Unauthenticated callers
// are redirected to the sign-in page; nothing after the guard runs.
func (m *middleware) PageAuthMiddleware(authService auth.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authService.GetSession(c.Context(), SessionToken(c))
		if err != nil {
			return c.Redirect("/signin", fiber.StatusSeeOther)
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_name", user.Name)
		c.Locals("user_email", user.Email)
		return c.Next()
	}
}

// SessionToken pulls the session token from the cookie set at login, or
// from a bearer header for programmatic callers.
func SessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
