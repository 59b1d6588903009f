// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	imageapp "github.com/weemeal/server/internal/application/image"
	recipeapp "github.com/weemeal/server/internal/application/recipe"
	tagsapp "github.com/weemeal/server/internal/application/tags"
	"github.com/weemeal/server/internal/domain/shared"
	"github.com/weemeal/server/internal/infrastructure/ai/anthropic"
	"github.com/weemeal/server/internal/infrastructure/config"
	"github.com/weemeal/server/internal/infrastructure/http/apiserver"
	"github.com/weemeal/server/internal/infrastructure/imagesearch/unsplash"
	"github.com/weemeal/server/internal/infrastructure/monitoring"
	gormRepo "github.com/weemeal/server/internal/infrastructure/persistence/gorm"
	"github.com/weemeal/server/internal/infrastructure/persistence/memory"
	"github.com/weemeal/server/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/weemeal/server/internal/infrastructure/persistence/redis"
	"github.com/weemeal/server/internal/infrastructure/persistence/sqlite"
	"github.com/weemeal/server/internal/ports/inbound"
	"github.com/weemeal/server/internal/ports/outbound"
	"github.com/weemeal/server/pkg/healthcheck"
	"github.com/weemeal/server/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ClientsModule,
	ServiceModule,
	EventModule,
	MonitoringModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the database connection for the configured
// driver
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		switch cfg.Database.Driver {
		case "postgres":
			return postgres.Connect(cfg, log)
		case "sqlite":
			logLevel := gormLogger.Warn
			if cfg.App.Debug {
				logLevel = gormLogger.Info
			}

			db, err := sqlite.SetupDatabase(cfg.Database.Database, logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
			}

			log.Info("Connected to SQLite database",
				zap.String("path", cfg.Database.Database),
			)
			return db, nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
		}
	},
)

// CacheModule provides caching, Redis when configured and in-memory
// otherwise. The *redis.Client is nil when Redis is not configured.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
		if !cfg.RedisEnabled() {
			return nil, nil
		}
		return redisRepo.NewClient(cfg, log)
	},
	newCacheRepository,
)

func newCacheRepository(client *redis.Client, log *zap.Logger) outbound.CacheRepository {
	if client == nil {
		log.Info("Redis not configured, using in-memory cache")
		return memory.NewCacheRepository()
	}
	return redisRepo.NewCacheRepository(client, log)
}

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
)

// ClientsModule provides the external service clients
var ClientsModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *anthropic.Client {
		return anthropic.NewClient(cfg.AI.AnthropicKey, log)
	},
	func(c *anthropic.Client) outbound.Translator { return c },
	func(c *anthropic.Client) outbound.TagSuggester { return c },
	func(cfg *config.Config, log *zap.Logger) outbound.PhotoSearcher {
		return unsplash.NewClient(cfg.Unsplash.AccessKey, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	imageapp.NewService,
	tagsapp.NewService,
	func(
		recipeRepo outbound.RecipeRepository,
		cache outbound.CacheRepository,
		images inbound.ImageService,
		dispatcher shared.EventDispatcher,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.RecipeService {
		return recipeapp.NewRecipeService(recipeRepo, cache, images, dispatcher, cfg.Bring.PublicBaseURL, log)
	},
)

// EventModule provides domain event handling
var EventModule = fx.Provide(
	func(log *zap.Logger, metrics *monitoring.MetricsCollector) shared.EventDispatcher {
		dispatcher := NewEventDispatcher(log)
		RegisterEventHandlers(dispatcher, log, metrics)
		return dispatcher
	},
)

// MonitoringModule provides metrics and health checks
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	newHealthCheck,
)

func newHealthCheck(cfg *config.Config, log *zap.Logger, db *gorm.DB, redisClient *redis.Client) (*healthcheck.HealthCheck, error) {
	health := healthcheck.New(cfg.App.Version, log)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	health.Register("database", healthcheck.NewDatabaseChecker(sqlDB))

	if redisClient != nil {
		health.Register("redis", healthcheck.NewRedisChecker(redisClient))
	}

	return health, nil
}

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting WeeMeal server",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down WeeMeal server")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
