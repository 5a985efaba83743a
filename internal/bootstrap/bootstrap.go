package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/marksheet/internal/app/auth"
	appControllers "github.com/yigit/marksheet/internal/app/controllers"
	appMigrations "github.com/yigit/marksheet/internal/app/migrations"
	appRepos "github.com/yigit/marksheet/internal/app/repositories"
	"github.com/yigit/marksheet/internal/app/repositories/memstore"
	appRoutes "github.com/yigit/marksheet/internal/app/routes"
	appServices "github.com/yigit/marksheet/internal/app/services"
	"github.com/yigit/marksheet/internal/config"
	"github.com/yigit/marksheet/internal/db"
	appMiddleware "github.com/yigit/marksheet/internal/middleware"
	pkgAuth "github.com/yigit/marksheet/internal/pkg/auth"
	"github.com/yigit/marksheet/internal/pkg/cache"
	"github.com/yigit/marksheet/internal/pkg/events"
	"github.com/yigit/marksheet/internal/pkg/logger"
	"github.com/yigit/marksheet/internal/pkg/websocket"
	"github.com/yigit/marksheet/internal/seed"
)

// Storage holds the record store and the handles that must be closed with it
type Storage struct {
	Store    appRepos.RecordStore
	Database *db.PostgresDB // nil for the memory driver
	Redis    *redis.Client  // nil when caching is disabled
}

// Close releases the database pool and the Redis client
func (s *Storage) Close() {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.Database != nil {
		s.Database.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Bus            *events.Bus
	Hub            *websocket.Hub
	GridCache      *cache.GridCache
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	AuthService    *appServices.AuthService
	MarksService   appServices.MarksService
	StudentService appServices.StudentService
	TeacherService appServices.TeacherService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger configures the global logger from cfg and returns it
func SetupLogger(cfg *config.Config) zerolog.Logger {
	format := strings.ToLower(cfg.Logging.Format)
	logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: format == "text" || format == "console",
	})
	return logger.Get()
}

// SetupStorage opens the configured record store, applies migrations when it
// is PostgreSQL, and connects the optional Redis cache.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	storage := &Storage{}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory store; records are lost on restart")
		storage.Store = memstore.New()

	default:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		if err := runMigrations(ctx, cfg, database, lgr); err != nil {
			database.Close()
			return nil, err
		}

		storage.Database = database
		storage.Store = appRepos.NewPostgresStore(database)
	}

	rdb, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to redis")
		storage.Close()
		return nil, err
	}
	if rdb == nil {
		lgr.Info().Msg("Redis address not configured, mark grid cache disabled")
	}
	storage.Redis = rdb

	return storage, nil
}

func runMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// BuildDependencies initializes services, middleware and controllers on top
// of an opened storage.
func BuildDependencies(cfg *config.Config, storage *Storage, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}
	store := storage.Store

	deps.Bus = events.NewBus(cfg.Events.BufferSize, lgr.With().Str("component", "bus").Logger())
	deps.Hub = websocket.NewHub(deps.Bus, cfg.Events.BufferSize, lgr.With().Str("component", "hub").Logger())
	deps.GridCache = cache.NewGridCache(storage.Redis, config.Duration(cfg.Redis.TTL, 10*time.Minute), lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Auth.Secret,
		TokenTTL:    config.Duration(cfg.Auth.TokenTTL, 12*time.Hour),
		TokenIssuer: cfg.Auth.Issuer,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(store)
	deps.AuthService = appServices.NewAuthService(store, cfg.Auth.Admins, deps.JWTService, lgr)
	deps.MarksService = appServices.NewMarksService(store, deps.GridCache, deps.Bus, lgr)
	deps.StudentService = appServices.NewStudentService(store, deps.GridCache, deps.Bus, lgr)
	deps.TeacherService = appServices.NewTeacherService(store, deps.Bus, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService)

	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(deps.AuthService, lgr),
		Student: appControllers.NewStudentController(deps.StudentService, deps.MarksService, lgr),
		Marks:   appControllers.NewMarksController(deps.MarksService, deps.AuthzService, lgr),
		Teacher: appControllers.NewTeacherController(deps.TeacherService, lgr),
		Health:  appControllers.NewHealthController(store.Driver(), deps.Hub),
		Events:  websocket.NewHandler(deps.Hub, lgr),
	}

	return deps
}

// SeedData applies the configured fixture. A failing fixture is logged and
// does not stop start-up.
func SeedData(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) {
	if cfg.Seed.File == "" {
		return
	}

	seeder := seed.NewSeeder(deps.StudentService, deps.TeacherService, deps.MarksService, lgr)
	if _, err := seeder.SeedFile(ctx, cfg.Seed.File); err != nil {
		lgr.Error().Err(err).Str("file", cfg.Seed.File).Msg("Failed to apply seed fixture, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterBindingRules(); err != nil {
		return nil, fmt.Errorf("failed to register binding rules: %w", err)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router, nil
}
