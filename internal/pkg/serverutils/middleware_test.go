package serverutils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", IdentityMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals(UserIdLocal).(string))
	})
	return app
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestIdentityVisitorHeader(t *testing.T) {
	app := identityApp()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-Visitor-Id", "visitor-42")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "visitor-42", readBody(t, resp))
}

func TestIdentityAnonymousFallback(t *testing.T) {
	app := identityApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(readBody(t, resp), "anon-"))
}

func TestIdentityOversizedHeaderIgnored(t *testing.T) {
	app := identityApp()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-Visitor-Id", strings.Repeat("x", 65))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(readBody(t, resp), "anon-"))
}

func TestIdentityBearerTokenWins(t *testing.T) {
	SetJWTSecret("test-secret")
	t.Cleanup(func() { SetJWTSecret("") })

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "user-7"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	app := identityApp()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	req.Header.Set("X-Visitor-Id", "visitor-42")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "user-7", readBody(t, resp))
}

func TestJwtMiddlewareRejectsMissingToken(t *testing.T) {
	app := fiber.New()
	app.Get("/secure", JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/secure", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewareRejectsWhenNoSecretConfigured(t *testing.T) {
	SetJWTSecret("")

	// Signed with an empty key; must not validate against an unset secret.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "user-7"})
	signed, err := token.SignedString([]byte{})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/secure", JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRateLimitWindowBudget(t *testing.T) {
	app := fiber.New()
	app.Get("/limited", RateLimitMiddleware(3, time.Minute), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitKeyedByIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/limited", IdentityMiddleware, RateLimitMiddleware(1, time.Minute), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	first := httptest.NewRequest("GET", "/limited", nil)
	first.Header.Set("X-Visitor-Id", "visitor-a")
	resp, err := app.Test(first)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	blocked := httptest.NewRequest("GET", "/limited", nil)
	blocked.Header.Set("X-Visitor-Id", "visitor-a")
	resp, err = app.Test(blocked)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	other := httptest.NewRequest("GET", "/limited", nil)
	other.Header.Set("X-Visitor-Id", "visitor-b")
	resp, err = app.Test(other)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "independent clients get independent windows")
}
