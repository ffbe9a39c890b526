package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rangeapi/docs"
	"rangeapi/internal/config"
	"rangeapi/internal/database"
	"rangeapi/internal/database/migration"
	"rangeapi/internal/deploy"
	handlers "rangeapi/internal/http/handler"
	"rangeapi/internal/http/middleware"
	rotel "rangeapi/internal/otel"
	"rangeapi/internal/repository/postgres"
	"rangeapi/internal/service"
	"rangeapi/internal/storage"
)

// @title Range API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := rotel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Startup gate: the database container may still be coming up.
	err = database.WaitReady(ctx, db,
		time.Duration(cfg.Database.ReadyIntervalSec)*time.Second,
		time.Duration(cfg.Database.ReadyTimeoutSec)*time.Second,
		cfg.Database.ReadyRetries,
	)
	if err != nil {
		log.Fatalf("database readiness: %v", err)
	}

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Repositories, deployer, services
	userRepo := postgres.NewUserPostgres(db)
	secretRepo := postgres.NewSecretPostgres(db)
	tplRepo := postgres.NewTemplatePostgres(db)
	rangeRepo := postgres.NewRangePostgres(db)

	deployer := deploy.NewCLIDeployer("", "")

	authSvc := service.NewAuthService(userRepo, secretRepo, cfg.Auth)
	tplSvc := service.NewTemplateService(tplRepo)
	rangeSvc := service.NewRangeService(rangeRepo, tplRepo, secretRepo, objStore, deployer)

	if err := authSvc.EnsureAdmin(ctx); err != nil {
		log.Fatalf("failed to bootstrap admin account: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Global middleware. RequestID must run first so the logger and error
	// envelope can pick up the ID.
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())

	// Template uploads may arrive as YAML.
	app.Use(middleware.YAMLBody())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, authSvc, tplSvc, rangeSvc, userRepo, !cfg.IsDevelopment())

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// In development a pprof/debug listener runs beside the service port so
	// a debugger can attach without going through the public surface.
	if cfg.IsDevelopment() {
		go func() {
			addr := ":" + cfg.DebugPort
			log.Printf(`{"level":"info","msg":"debug_listener_started","addr":%q}`, addr)
			if err := http.ListenAndServe(addr, nil); err != nil {
				log.Printf(`{"level":"error","msg":"debug_listener_failed","error":%q}`, err.Error())
			}
		}()
	}

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
