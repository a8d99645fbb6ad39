package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"mediavault/docs"
	"mediavault/internal/config"
	"mediavault/internal/database"
	"mediavault/internal/database/migration"
	handlers "mediavault/internal/http/handler"
	"mediavault/internal/http/middleware"
	"mediavault/internal/otel"
	"mediavault/internal/repository/postgres"
	"mediavault/internal/service"
	"mediavault/internal/storage"
)

// @title MediaVault API
// @version 1.0
// @BasePath /
func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer shutdownTracing(ctx)

	// PostgreSQL connection with pooling via database/sql
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// S3-compatible blob gateway (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	// Repositories
	userRepo := postgres.NewUserPostgres(db)
	instanceRepo := postgres.NewInstancePostgres(db)
	groupRepo := postgres.NewGroupPostgres(db)
	resourceRepo := postgres.NewResourcePostgres(db)
	commentRepo := postgres.NewCommentPostgres(db)

	// Services
	cascader := service.NewCascader(objStore, instanceRepo, groupRepo, resourceRepo, commentRepo, cfg.CascadeWorkers, log)
	svcs := handlers.Services{
		Users:     service.NewUserService(userRepo, cfg.Auth),
		Instances: service.NewInstanceService(objStore, instanceRepo, cascader),
		Groups:    service.NewGroupService(groupRepo, instanceRepo, cascader),
		Resources: service.NewResourceService(objStore, resourceRepo, groupRepo, instanceRepo),
		Comments:  service.NewCommentService(commentRepo, instanceRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	// Global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Auth(cfg.Auth.JWTSecret))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, svcs)

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

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
