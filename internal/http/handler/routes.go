package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"rangeapi/internal/http/middleware"
	"rangeapi/internal/repository"
	"rangeapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin; everything interesting lives in the services.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	authSvc service.AuthService,
	tplSvc service.TemplateService,
	rangeSvc service.RangeService,
	users repository.UserRepository,
	secureCookies bool,
) {
	authH := NewAuthHandler(authSvc, secureCookies)
	tplH := NewTemplateHandler(tplSvc)
	rangeH := NewRangeHandler(rangeSvc)

	// Health endpoint: checks DB connectivity only.
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe.
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	v1 := app.Group("/api/v1")

	v1.Post("/auth/register", authH.Register)
	v1.Post("/auth/login", authH.Login)

	authed := v1.Group("", middleware.JWTAuth(authSvc, users))
	authed.Post("/auth/password", authH.UpdatePassword)

	tpls := authed.Group("/templates")
	tpls.Post("/ranges", tplH.CreateRangeTemplate)
	tpls.Get("/ranges", tplH.ListRangeTemplates)
	tpls.Get("/ranges/:id", tplH.GetRangeTemplate)
	tpls.Delete("/ranges/:id", tplH.DeleteRangeTemplate)

	tpls.Post("/vpcs", tplH.CreateVPCTemplate)
	tpls.Get("/vpcs", tplH.ListVPCTemplates)
	tpls.Get("/vpcs/:id", tplH.GetVPCTemplate)
	tpls.Delete("/vpcs/:id", tplH.DeleteVPCTemplate)

	tpls.Post("/subnets", tplH.CreateSubnetTemplate)
	tpls.Get("/subnets", tplH.ListSubnetTemplates)
	tpls.Get("/subnets/:id", tplH.GetSubnetTemplate)
	tpls.Delete("/subnets/:id", tplH.DeleteSubnetTemplate)

	tpls.Post("/hosts", tplH.CreateHostTemplate)
	tpls.Get("/hosts", tplH.ListHostTemplates)
	tpls.Get("/hosts/:id", tplH.GetHostTemplate)
	tpls.Delete("/hosts/:id", tplH.DeleteHostTemplate)

	ranges := authed.Group("/ranges")
	ranges.Post("/deploy", rangeH.Deploy)
	ranges.Get("/", rangeH.List)
	ranges.Get("/:id", rangeH.Get)
	ranges.Delete("/:id", rangeH.Destroy)
}
