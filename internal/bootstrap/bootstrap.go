package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/unischedule/internal/app/controllers"
	appMigrations "github.com/yigit/unischedule/internal/app/migrations"
	appRepos "github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/app/repositories/memory"
	appRoutes "github.com/yigit/unischedule/internal/app/routes"
	appServices "github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/db"
	"github.com/yigit/unischedule/internal/jobs"
	appMiddleware "github.com/yigit/unischedule/internal/middleware"
	pkgAuth "github.com/yigit/unischedule/internal/pkg/auth"
	"github.com/yigit/unischedule/internal/pkg/helpers"
	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/pkg/metrics"
	"github.com/yigit/unischedule/internal/pkg/websocket"
	"github.com/yigit/unischedule/internal/seed"
)

const reconcileJobTimeout = 2 * time.Minute

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Handlers       *appRoutes.Handlers
	Hub            *websocket.Hub
	Logger         zerolog.Logger
}

// Storage is the selected persistence backend. Close is a no-op for the
// memory driver.
type Storage struct {
	Repos *appRepos.Repositories
	Close func()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default config/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("config", "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured database driver. For Postgres it also
// applies the embedded migrations.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory storage, data is lost on restart")
		return &Storage{Repos: memory.NewRepositories(), Close: func() {}}, nil
	}

	lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).MigrateEmbedded(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Storage{Repos: appRepos.NewPostgresRepositories(database), Close: database.Close}, nil
}

// BuildDependencies initializes services, middleware and controllers on repos
// and creates the seed admin when one is configured.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 720*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(repos, deps.JWTService)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.Auth)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultAdmin(ctx, cfg, repos.Users, lgr); err != nil {
		return nil, fmt.Errorf("failed to seed admin: %w", err)
	}

	deps.Hub = websocket.NewHub(websocket.NewEventLogger(logger.WithComponent("events")), logger.WithComponent("ws"))

	deps.Handlers = &appRoutes.Handlers{
		Auth:       appControllers.NewAuthController(deps.Services.Auth, cfg.JWT.SecureCookie, logger.WithComponent("auth")),
		Faculty:    appControllers.NewFacultyController(deps.Services.Faculties),
		Course:     appControllers.NewCourseController(deps.Services.Courses),
		Booking:    appControllers.NewBookingController(deps.Services.Bookings),
		Session:    appControllers.NewSessionController(deps.Services.Sessions),
		Timetable:  appControllers.NewTimetableController(deps.Services.Timetables),
		Enrollment: appControllers.NewEnrollmentController(deps.Services.Enrollments),
		Events:     websocket.NewHandler(deps.Hub, logger.WithComponent("ws")),
	}

	return deps, nil
}

// SetupJobs registers the reconciliation job when enabled. It returns nil
// when there is nothing to schedule.
func SetupJobs(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*jobs.Manager, error) {
	if !cfg.Reconcile.Enabled {
		lgr.Info().Msg("Reconciliation job disabled")
		return nil, nil
	}

	manager := jobs.NewManager(logger.WithComponent("cron"))
	err := manager.Register(jobs.Job{
		Name:     "reconcile_derived_arrays",
		Schedule: cfg.Reconcile.Schedule,
		Timeout:  reconcileJobTimeout,
		Run: func(ctx context.Context) error {
			_, err := deps.Services.Reconciliation.Run(ctx)
			return err
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register reconciliation job: %w", err)
	}
	return manager, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		appMiddleware.Recovery(),
		appMiddleware.CORS(cfg.AllowedOrigins()),
		metrics.Middleware(),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Handlers, deps.AuthMiddleware)

	return router
}
