package middleware

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"rangeapi/internal/model"
)

// Logger logs each HTTP request as one JSON object per line on stdout.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
// - user_id (when the request was authenticated)
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout)
}

// LoggerWithWriter is Logger with a custom destination, used in tests.
func LoggerWithWriter(w io.Writer) fiber.Handler {
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Collect fields after the handler executed to capture final status.
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		entry := map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency":    float64(time.Since(start).Milliseconds()),
		}
		if u, ok := c.Locals(UserLocalKey).(*model.User); ok {
			entry["user_id"] = u.ID
		}
		_ = enc.Encode(entry)

		return err
	}
}
