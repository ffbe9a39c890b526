package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"rangeapi/internal/model"
	"rangeapi/internal/repository"
	"rangeapi/internal/service"
)

const (
	// TokenCookie carries the access token for browser clients; the
	// Authorization header is the fallback for API clients.
	TokenCookie = "token"
	// MasterKeyCookie carries the base64 master key issued at login.
	MasterKeyCookie = "enc_key"
	// UserLocalKey is where the authenticated user is stored in locals.
	UserLocalKey = "current_user"
)

// JWTAuth authenticates requests. The token is read from the token cookie
// first, then from a Bearer Authorization header. Failures set
// WWW-Authenticate and return 401 with a reason: missing token, invalid or
// expired token, or a user that no longer exists.
//
// On success the user is stored in locals and last_active is updated best
// effort.
func JWTAuth(auth service.AuthService, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(TokenCookie)
		if token == "" {
			h := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if token == "" {
			return unauthorized(c, "missing access token")
		}

		userID, err := auth.ParseToken(token)
		if err != nil {
			return unauthorized(c, "invalid or expired token")
		}

		user, err := auth.GetUser(c.UserContext(), userID)
		if err != nil {
			return unauthorized(c, "user no longer exists")
		}

		c.Locals(UserLocalKey, user)

		_ = users.TouchLastActive(c.UserContext(), user.ID, time.Now().UTC())

		return c.Next()
	}
}

// CurrentUser returns the authenticated user stored by JWTAuth, nil when the
// request is anonymous.
func CurrentUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}

func unauthorized(c *fiber.Ctx, reason string) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="api"`)
	return fiber.NewError(fiber.StatusUnauthorized, reason)
}
