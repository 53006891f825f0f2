package bootstrap

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ekinkaya/classtrack/internal/app/controllers"
	appMigrations "github.com/ekinkaya/classtrack/internal/app/migrations"
	appRepos "github.com/ekinkaya/classtrack/internal/app/repositories"
	appRoutes "github.com/ekinkaya/classtrack/internal/app/routes"
	appServices "github.com/ekinkaya/classtrack/internal/app/services"
	"github.com/ekinkaya/classtrack/internal/config"
	"github.com/ekinkaya/classtrack/internal/db"
	appMiddleware "github.com/ekinkaya/classtrack/internal/middleware"
	pkgAuth "github.com/ekinkaya/classtrack/internal/pkg/auth"
	"github.com/ekinkaya/classtrack/internal/pkg/cache"
	"github.com/ekinkaya/classtrack/internal/pkg/helpers"
	"github.com/ekinkaya/classtrack/internal/pkg/logger"
	"github.com/ekinkaya/classtrack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	TimetableService     appServices.TimetableService
	AttendanceService    appServices.AttendanceService
	PromotionService     appServices.PromotionService
	TimetableController  *appControllers.TimetableController
	AttendanceController *appControllers.AttendanceController
	StudentController    *appControllers.StudentController
	PromotionController  *appControllers.PromotionController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	Pool                 *pgxpool.Pool
	JWTService           *pkgAuth.JWTService
	Redis                *db.Redis
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Warn().Str("path", migrationsDir).Msg("Migrations directory not found, skipping migrations")
		return dbPool, nil
	}

	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database migrations applied")

	if strings.ToLower(cfg.Server.Mode) != "production" {
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			lgr.Warn().Err(err).Msg("Failed to seed default development data")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Pool: dbPool}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.Redis = db.NewRedis(cfg.Redis.Addr)
	aggregateCache := cache.New(deps.Redis.Client, helpers.ParseDuration(cfg.Redis.CacheTTL, 5*time.Minute))

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})

	txRunner := &db.PostgresDB{Pool: dbPool}

	deps.TimetableService = appServices.NewTimetableService(
		deps.Repos.SlotRepository,
		deps.Repos.InstructorRepository,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.SlotRepository,
		deps.Repos.SessionRepository,
		deps.Repos.StudentRepository,
		txRunner,
		aggregateCache,
	)
	deps.PromotionService = appServices.NewPromotionService(deps.Repos.StudentRepository, aggregateCache)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.TimetableController = appControllers.NewTimetableController(deps.TimetableService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.StudentController = appControllers.NewStudentController(deps.AttendanceService, deps.TimetableService)
	deps.PromotionController = appControllers.NewPromotionController(deps.PromotionService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.Use(appMiddleware.RequestMetrics())
	if cfg.RateLimit.PerMinute > 0 {
		limiter := appMiddleware.NewTokenBucket(cfg.RateLimit.PerMinute, cfg.RateLimit.PerMinute)
		router.Use(limiter.GinMiddleware())
	}

	appRoutes.SetupRouter(router,
		deps.TimetableController,
		deps.AttendanceController,
		deps.StudentController,
		deps.PromotionController,
		deps.AuthMiddleware,
	)

	router.GET("/metrics", appMiddleware.MetricsHandler())

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		dbOK := deps.Pool.Ping(ctx) == nil
		if !dbOK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"database": dbOK,
			"redis":    deps.Redis.Healthy(ctx),
		})
	})

	return router
}
