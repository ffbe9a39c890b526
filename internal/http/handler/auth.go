package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rangeapi/internal/http/middleware"
	"rangeapi/internal/service"
)

// AuthHandler serves registration, login and password changes.
type AuthHandler struct {
	auth   service.AuthService
	secure bool
}

// NewAuthHandler constructs an AuthHandler. secure controls the Secure flag
// on issued cookies.
func NewAuthHandler(auth service.AuthService, secure bool) *AuthHandler {
	return &AuthHandler{auth: auth, secure: secure}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Register creates an account.
//
//	@Summary	Register a new user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body	registerRequest	true	"account details"
//	@Success	201
//	@Failure	409
//	@Router		/api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	if req.Email == "" || req.Name == "" {
		return writeError(c, fiber.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "name and email are required")
	}

	u, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "user with that email already exists")
		case errors.Is(err, service.ErrPasswordTooShort):
			return writeError(c, fiber.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", err.Error())
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	})
}

// Login verifies credentials and issues the access token plus the enc_key
// cookie that carries the password-derived master key.
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body	loginRequest	true	"credentials"
//	@Success	200
//	@Failure	401
//	@Router		/api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	res, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="api"`)
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid email or password")
		}
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    res.Token,
		Expires:  res.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	// Not HTTPOnly: clients must read the master key to present it on
	// credential-bearing calls.
	c.Cookie(&fiber.Cookie{
		Name:     middleware.MasterKeyCookie,
		Value:    res.MasterKey,
		Expires:  res.ExpiresAt,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(res)
}

// UpdatePassword changes the caller's password and re-seals key material.
//
//	@Summary	Change password
//	@Tags		auth
//	@Accept		json
//	@Success	204
//	@Failure	401
//	@Router		/api/v1/auth/password [post]
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	if caller == nil {
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "missing access token")
	}

	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}

	err := h.auth.UpdatePassword(c.UserContext(), caller.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "current password is incorrect")
		case errors.Is(err, service.ErrPasswordTooShort):
			return writeError(c, fiber.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "user no longer exists")
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}

	// Old master key no longer opens anything; force a fresh login.
	c.ClearCookie(middleware.TokenCookie, middleware.MasterKeyCookie)

	return c.SendStatus(fiber.StatusNoContent)
}
