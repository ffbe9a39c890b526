package middleware

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

// YAMLBody rewrites application/yaml request bodies to JSON so handlers only
// ever parse one format. Unparseable YAML is rejected with 422 before it
// reaches a handler.
func YAMLBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ct := c.Get(fiber.HeaderContentType)
		if !strings.HasPrefix(ct, "application/yaml") && !strings.HasPrefix(ct, "text/yaml") {
			return c.Next()
		}

		var doc any
		if err := yaml.Unmarshal(c.Body(), &doc); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "request body is not valid yaml")
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "request body is not valid yaml")
		}

		c.Request().Header.SetContentType(fiber.MIMEApplicationJSON)
		c.Request().SetBody(body)

		return c.Next()
	}
}
