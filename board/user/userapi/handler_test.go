package userapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/easilyhq/easily/board/user"
	"github.com/easilyhq/easily/board/user/userauth"
	"github.com/easilyhq/easily/board/user/userinfra"
	"github.com/easilyhq/easily/board/user/usersrv"
	"github.com/easilyhq/easily/pkg/errx"
)

func testErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := userinfra.NewMemoryUserRepository(nil, nil)
	// Minimum bcrypt cost keeps the hashing fast in tests.
	passwords := userinfra.NewBcryptPasswordService(4)
	tokens := userauth.NewTokenService([]byte("test-secret"), time.Hour, nil)
	service := usersrv.NewUserService(repo, passwords, tokens)

	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	RegisterRoutes(app, NewHandlers(service), userauth.Middleware(tokens))
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func jsonReq(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeSession(t *testing.T, resp *http.Response) user.SessionResponse {
	t.Helper()
	defer resp.Body.Close()
	var session user.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session
}

func registerReq() map[string]any {
	return map[string]any{
		"name":     "Riya",
		"email":    "riya@example.com",
		"password": "s3cret-pass",
		"mobile":   "9876543210",
	}
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == userauth.SessionCookie {
			return c
		}
	}
	return nil
}

func TestRegisterSetsSessionCookie(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, jsonReq(t, http.MethodPost, "/api/auth/register", registerReq()))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}

	cookie := sessionCookie(resp)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("no session cookie set on register")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HTTP-only")
	}

	session := decodeSession(t, resp)
	if session.Token == "" {
		t.Error("register response carries no token")
	}
	if session.User.Email.String() != "riya@example.com" {
		t.Errorf("wrong session user: %q", session.User.Email)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, jsonReq(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Riya",
	}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	app := newTestApp(t)

	do(t, app, jsonReq(t, http.MethodPost, "/api/auth/register", registerReq()))

	dup := registerReq()
	dup["email"] = "RIYA@example.com"
	resp := do(t, app, jsonReq(t, http.MethodPost, "/api/auth/register", dup))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	do(t, app, jsonReq(t, http.MethodPost, "/api/auth/register", registerReq()))

	resp := do(t, app, jsonReq(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "Riya@Example.com",
		"password": "s3cret-pass",
	}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	if sessionCookie(resp) == nil {
		t.Error("no session cookie set on login")
	}
	if decodeSession(t, resp).Token == "" {
		t.Error("login response carries no token")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	app := newTestApp(t)
	do(t, app, jsonReq(t, http.MethodPost, "/api/auth/register", registerReq()))

	resp := do(t, app, jsonReq(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "riya@example.com",
		"password": "wrong",
	}))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMeWithCookie(t *testing.T) {
	app := newTestApp(t)
	registered := do(t, app, jsonReq(t, http.MethodPost, "/api/auth/register", registerReq()))
	cookie := sessionCookie(registered)
	if cookie == nil {
		t.Fatal("no session cookie from register")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	resp := do(t, app, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: status %d", resp.StatusCode)
	}
	defer resp.Body.Close()
	var me user.UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Email.String() != "riya@example.com" {
		t.Errorf("wrong account: %q", me.Email)
	}
}

func TestMeWithBearerToken(t *testing.T) {
	app := newTestApp(t)
	session := decodeSession(t, do(t, app, jsonReq(t, http.MethodPost, "/api/auth/register", registerReq())))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	if resp := do(t, app, req); resp.StatusCode != http.StatusOK {
		t.Errorf("me with bearer: status %d", resp.StatusCode)
	}
}

func TestMeWithoutSession(t *testing.T) {
	app := newTestApp(t)
	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	app := newTestApp(t)
	resp := do(t, app, jsonReq(t, http.MethodPost, "/api/auth/logout", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: status %d", resp.StatusCode)
	}
	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatal("logout must rewrite the session cookie")
	}
	if cookie.Value != "" && !cookie.Expires.Before(time.Now()) {
		t.Error("logout cookie is still a live session")
	}
}
