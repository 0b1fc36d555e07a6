package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/curso/internal/app/controllers"
	appMigrations "github.com/yigit/curso/internal/app/migrations"
	appRepos "github.com/yigit/curso/internal/app/repositories"
	appRoutes "github.com/yigit/curso/internal/app/routes"
	appServices "github.com/yigit/curso/internal/app/services"
	"github.com/yigit/curso/internal/config"
	"github.com/yigit/curso/internal/db"
	appMiddleware "github.com/yigit/curso/internal/middleware"
	"github.com/yigit/curso/internal/pkg/csrf"
	"github.com/yigit/curso/internal/pkg/helpers"
	"github.com/yigit/curso/internal/pkg/logger"
	"github.com/yigit/curso/internal/seed"
	"github.com/yigit/curso/internal/web"
)

// DataStore is the opened course store and the function releasing it
type DataStore struct {
	Repos *appRepos.Repositories
	Close func()
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos            *appRepos.Repositories
	CourseService    appServices.CourseService // Interface type
	CourseController *appControllers.CourseController
	PageController   *appControllers.PageController
	CSRF             *csrf.Manager              // nil when CSRF protection is disabled
	RateLimiter      *appMiddleware.RateLimiter // nil when no Redis is configured
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store and brings its schema up to date.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*DataStore, error) {
	var (
		store *DataStore
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		store, err = setupPostgres(cfg, lgr)
	case config.DriverSQLite:
		store, err = setupSQLite(cfg, lgr)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Database.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := seed.CreateDefaultCourses(ctx, store.Repos.CourseRepository, seed.DefaultCourses, lgr); err != nil {
			// Startup continues; the page works with whatever was stored
			lgr.Error().Err(err).Msg("Failed to create default courses, proceeding anyway...")
		}
	}

	return store, nil
}

func setupPostgres(cfg *config.Config, lgr zerolog.Logger) (*DataStore, error) {
	lgr.Info().Str("host", cfg.Database.Host).Msg("Establishing PostgreSQL connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fsys, dir := appMigrations.Bundled()
	if err := appMigrations.NewMigrator(database.Pool).MigrateFS(ctx, fsys, dir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &DataStore{
		Repos: appRepos.NewPostgresRepositories(database.Pool),
		Close: database.Close,
	}, nil
}

func setupSQLite(cfg *config.Config, lgr zerolog.Logger) (*DataStore, error) {
	lgr.Info().Str("path", cfg.Database.Path).Msg("Opening SQLite database...")
	database, err := db.NewSQLiteDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open database")
		return nil, err
	}

	if err := appMigrations.AutoMigrate(database.DB); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("SQLite schema is up to date.")

	return &DataStore{
		Repos: appRepos.NewGormRepositories(database.DB),
		Close: database.Close,
	}, nil
}

// SetupRedis connects the rate limiter store. It returns nil when no
// address is configured; an unreachable server is logged and kept, since
// the limiter lets requests through while Redis is down.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	if cfg.RateLimit.RedisAddr == "" {
		lgr.Info().Msg("Rate limiting disabled (no Redis address configured)")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RateLimit.RedisAddr,
		Password: cfg.RateLimit.RedisPassword,
		DB:       cfg.RateLimit.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.RateLimit.RedisAddr).Msg("Redis not reachable, rate limiter will fail open")
	} else {
		lgr.Info().Str("addr", cfg.RateLimit.RedisAddr).Msg("Redis connection established")
	}
	return client
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, redisClient *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	if repos == nil || repos.CourseRepository == nil {
		return nil, fmt.Errorf("course repository is required")
	}

	deps := &Dependencies{Repos: repos, Logger: lgr}

	if cfg.Security.CSRFEnabled {
		deps.CSRF = csrf.NewManager(csrf.Config{
			SecretKey: cfg.Security.SecretKey,
			TimeLimit: helpers.ParseDuration(cfg.Security.CSRFTimeLimit, time.Hour),
			Secure:    cfg.IsProduction(),
		})
	} else {
		lgr.Warn().Msg("CSRF protection disabled")
	}

	if redisClient != nil {
		deps.RateLimiter = appMiddleware.NewRateLimiter(redisClient)
	}

	deps.CourseService = appServices.NewCourseService(repos.CourseRepository, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.CSRF, lgr)
	deps.PageController = appControllers.NewPageController()

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware, views and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), appMiddleware.Recovery())

	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
		router.Use(cors.New(corsConfig))
		lgr.Info().Strs("origins", cfg.Server.AllowedOrigins).Msg("CORS enabled")
	}

	templates, err := web.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(templates)

	appRoutes.SetupRouter(router,
		deps.PageController,
		deps.CourseController,
		appRoutes.SubmissionLimit{
			Limiter: deps.RateLimiter,
			Max:     cfg.RateLimit.Submissions,
			Window:  helpers.ParseDuration(cfg.RateLimit.Window, time.Minute),
		},
	)

	return router, nil
}
