package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/alumniportal/internal/app/controllers"
	appMigrations "github.com/yigit/alumniportal/internal/app/migrations"
	appRepos "github.com/yigit/alumniportal/internal/app/repositories"
	appRoutes "github.com/yigit/alumniportal/internal/app/routes"
	appServices "github.com/yigit/alumniportal/internal/app/services"
	"github.com/yigit/alumniportal/internal/config"
	"github.com/yigit/alumniportal/internal/db"
	"github.com/yigit/alumniportal/internal/metrics"
	appMiddleware "github.com/yigit/alumniportal/internal/middleware"
	pkgAuth "github.com/yigit/alumniportal/internal/pkg/auth"
	"github.com/yigit/alumniportal/internal/pkg/filestorage"
	"github.com/yigit/alumniportal/internal/pkg/logger"
	"github.com/yigit/alumniportal/internal/pkg/validation"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos           *appRepos.Repositories
	Services        *appServices.Services
	Hasher          *pkgAuth.PasswordHasher
	FileStorage     *filestorage.LocalStorage
	AuthMiddleware  *appMiddleware.AuthMiddleware
	AuthController  *appControllers.AuthController
	HomeController  *appControllers.HomeController
	IndexController *appControllers.IndexController
	Logger          zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// MigrateDatabase applies every pending migration
func MigrateDatabase(cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(cfg.GetPostgresConnectionString(), lgr).Up(); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupDatabase establishes the database connection and, when migrate is set,
// brings the schema up to date first.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger, migrate bool) (*db.PostgresDB, error) {
	if migrate {
		if err := MigrateDatabase(cfg, lgr); err != nil {
			return nil, err
		}
	}

	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.MediaURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Hasher = pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
	deps.Services = appServices.NewServices(deps.Repos, deps.FileStorage, deps.Hasher, validation.New(), lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.Credentials, logger.Component("auth"))

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth, lgr)
	deps.HomeController = appControllers.NewHomeController(deps.Services.Home, lgr)
	deps.IndexController = appControllers.NewIndexController(appRoutes.NamedRoutes(), cfg.Server.PublicURL, dbPool)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.Component("http")))
	router.Use(metrics.GinMiddleware())

	handlers := appRoutes.NewHandlers(deps.AuthController, deps.HomeController, deps.IndexController)
	if err := appRoutes.SetupRouter(router, handlers, deps.AuthMiddleware); err != nil {
		return nil, err
	}

	router.GET("/health", deps.IndexController.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	setupStaticFileServing(router, cfg, lgr)

	return router, nil
}

// setupStaticFileServing serves stored uploads under the media URL
func setupStaticFileServing(router *gin.Engine, cfg *config.Config, lgr zerolog.Logger) {
	uploadPath := cfg.Server.StoragePath
	if err := os.MkdirAll(uploadPath, 0o755); err != nil {
		lgr.Error().Err(err).Str("path", uploadPath).Msg("Failed to create media directory")
		return
	}

	// only a path-only media URL can be mounted on this router
	if !strings.HasPrefix(cfg.Server.MediaURL, "/") {
		lgr.Info().Str("mediaURL", cfg.Server.MediaURL).Msg("Media served externally")
		return
	}
	router.Static(cfg.Server.MediaURL, uploadPath)
	lgr.Info().Str("path", uploadPath).Str("url", cfg.Server.MediaURL).Msg("Static file serving configured for media")
}
