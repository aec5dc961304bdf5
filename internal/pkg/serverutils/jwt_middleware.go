package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const UserIdLocal = "user_id"

var jwtSecret []byte

// SetJWTSecret installs the signing secret from configuration. Called once
// at bootstrap before the server accepts requests.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// IdentityMiddleware attaches an opaque user id to the request. A valid
// bearer token wins, then the X-Visitor-Id header, then a fresh anonymous id.
// Requests are never rejected for missing credentials since the assistant is
// a public website surface.
func IdentityMiddleware(ctx *fiber.Ctx) error {
	if userId := userIdFromToken(ctx.Get("Authorization")); userId != "" {
		ctx.Locals(UserIdLocal, userId)
		return ctx.Next()
	}

	if visitorId := ctx.Get("X-Visitor-Id"); visitorId != "" && len(visitorId) <= 64 {
		ctx.Locals(UserIdLocal, visitorId)
		return ctx.Next()
	}

	ctx.Locals(UserIdLocal, "anon-"+uuid.NewString())
	return ctx.Next()
}

// JwtMiddleware rejects requests without a valid bearer token. Used for the
// operational endpoints that mutate state.
func JwtMiddleware(ctx *fiber.Ctx) error {
	userId := userIdFromToken(ctx.Get("Authorization"))
	if userId == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing or invalid token"))
	}
	ctx.Locals(UserIdLocal, userId)
	return ctx.Next()
}

func userIdFromToken(authHeader string) string {
	// No secret configured means no token can be trusted
	if len(jwtSecret) == 0 {
		return ""
	}
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if userId, ok := claims["user_id"].(string); ok {
		return userId
	}
	return ""
}
