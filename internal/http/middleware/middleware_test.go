package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rangeapi/internal/model"
	repoMocks "rangeapi/internal/repository/mocks"
	"rangeapi/internal/service"
	serviceMocks "rangeapi/internal/service/mocks"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
}

func TestNoop(t *testing.T) {
	app := fiber.New()
	app.Use(Noop())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestYAMLBody(t *testing.T) {
	app := fiber.New()
	app.Use(YAMLBody())

	app.Post("/test", func(c *fiber.Ctx) error {
		var body map[string]any
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "not json")
		}
		return c.JSON(body)
	})

	t.Run("yaml body arrives as json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", bytes.NewBufferString("name: test-range\nvnc: true\n"))
		req.Header.Set(fiber.HeaderContentType, "application/yaml")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "test-range", body["name"])
		assert.Equal(t, true, body["vnc"])
	})

	t.Run("invalid yaml rejected with 422", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", bytes.NewBufferString("name: [unclosed"))
		req.Header.Set(fiber.HeaderContentType, "application/yaml")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("json body passes through untouched", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", bytes.NewBufferString(`{"name":"test-range"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestJWTAuth(t *testing.T) {
	user := &model.User{ID: "user-1", Email: "user@example.com"}

	newApp := func(auth *serviceMocks.MockAuthService, users *repoMocks.MockUserRepository) *fiber.App {
		app := fiber.New()
		app.Use(JWTAuth(auth, users))
		app.Get("/protected", func(c *fiber.Ctx) error {
			u := CurrentUser(c)
			return c.SendString(u.ID)
		})
		return app
	}

	t.Run("missing token", func(t *testing.T) {
		auth := new(serviceMocks.MockAuthService)
		users := new(repoMocks.MockUserRepository)
		app := newApp(auth, users)

		req := httptest.NewRequest("GET", "/protected", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderWWWAuthenticate))
	})

	t.Run("cookie token accepted", func(t *testing.T) {
		auth := new(serviceMocks.MockAuthService)
		users := new(repoMocks.MockUserRepository)
		auth.On("ParseToken", "good-token").Return(user.ID, nil)
		auth.On("GetUser", mock.Anything, user.ID).Return(user, nil)
		users.On("TouchLastActive", mock.Anything, user.ID, mock.Anything).Return(nil)

		app := newApp(auth, users)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "good-token"})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		auth.AssertExpectations(t)
	})

	t.Run("bearer header fallback", func(t *testing.T) {
		auth := new(serviceMocks.MockAuthService)
		users := new(repoMocks.MockUserRepository)
		auth.On("ParseToken", "bearer-token").Return(user.ID, nil)
		auth.On("GetUser", mock.Anything, user.ID).Return(user, nil)
		users.On("TouchLastActive", mock.Anything, user.ID, mock.Anything).Return(nil)

		app := newApp(auth, users)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer bearer-token")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		auth := new(serviceMocks.MockAuthService)
		users := new(repoMocks.MockUserRepository)
		auth.On("ParseToken", "bad-token").Return("", service.ErrInvalidToken)

		app := newApp(auth, users)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer bad-token")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("user gone", func(t *testing.T) {
		auth := new(serviceMocks.MockAuthService)
		users := new(repoMocks.MockUserRepository)
		auth.On("ParseToken", "orphan-token").Return("ghost", nil)
		auth.On("GetUser", mock.Anything, "ghost").Return(nil, service.ErrUserNotFound)

		app := newApp(auth, users)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer orphan-token")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("touch failure does not block request", func(t *testing.T) {
		auth := new(serviceMocks.MockAuthService)
		users := new(repoMocks.MockUserRepository)
		auth.On("ParseToken", "good-token").Return(user.ID, nil)
		auth.On("GetUser", mock.Anything, user.ID).Return(user, nil)
		users.On("TouchLastActive", mock.Anything, user.ID, mock.Anything).Return(errors.New("db fail"))

		app := newApp(auth, users)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "good-token"})

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
