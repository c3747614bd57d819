package userapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/easilyhq/easily/board/user"
	"github.com/easilyhq/easily/board/user/userauth"
	"github.com/easilyhq/easily/board/user/usersrv"
)

// Handlers provides HTTP handlers for accounts and sessions
type Handlers struct {
	service *usersrv.UserService
}

// NewHandlers creates a new user handlers instance
func NewHandlers(service *usersrv.UserService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Register creates an account and opens a session
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidUser().WithDetail("parse_error", err.Error())
	}

	session, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	setSessionCookie(c, session.Token)
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Login verifies credentials and opens a session
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidCredentials()
	}

	session, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	setSessionCookie(c, session.Token)
	return c.JSON(session)
}

// Logout clears the session cookie
// POST /api/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     userauth.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me retrieves the account behind the session
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	userID, ok := userauth.GetUserID(c)
	if !ok {
		return user.ErrUnauthenticated()
	}

	account, err := h.service.Me(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(account)
}

// RegisterRoutes mounts auth routes on the app
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/auth")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)
	api.Post("/logout", handlers.Logout)
	api.Get("/me", authMiddleware, handlers.Me)
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     userauth.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(userauth.DefaultSessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
