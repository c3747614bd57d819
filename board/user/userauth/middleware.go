package userauth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/easilyhq/easily/board/user"
	"github.com/easilyhq/easily/pkg/kernel"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session token
const SessionCookie = "easily_session"

// Middleware validates the session and stashes the identity in locals. The
// token comes from the session cookie, or from a Bearer header for API
// clients that don't hold cookies.
func Middleware(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			authHeader := c.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}
		if token == "" {
			return user.ErrUnauthenticated()
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			return err
		}

		c.Locals("user_id", claims.UserID())
		c.Locals("user_email", kernel.NewEmail(claims.Email))

		return c.Next()
	}
}

// GetUserID extracts the session's user ID from context
func GetUserID(c *fiber.Ctx) (kernel.UserID, bool) {
	userID, ok := c.Locals("user_id").(kernel.UserID)
	return userID, ok
}

// GetUserEmail extracts the session's email from context
func GetUserEmail(c *fiber.Ctx) (kernel.Email, bool) {
	email, ok := c.Locals("user_email").(kernel.Email)
	return email, ok
}
