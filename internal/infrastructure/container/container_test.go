package container

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/weemeal/server/internal/infrastructure/config"
	memoryRepo "github.com/weemeal/server/internal/infrastructure/persistence/memory"
	redisRepo "github.com/weemeal/server/internal/infrastructure/persistence/redis"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestNewCacheRepository(t *testing.T) {
	t.Run("NoRedisClient_UsesInMemoryCache", func(t *testing.T) {
		repo := newCacheRepository(nil, zap.NewNop())

		assert.IsType(t, &memoryRepo.CacheRepository{}, repo)
	})

	t.Run("RedisClient_UsesRedisCache", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		t.Cleanup(func() { client.Close() })

		repo := newCacheRepository(client, zap.NewNop())

		assert.IsType(t, &redisRepo.CacheRepository{}, repo)
	})
}

func TestNewHealthCheck(t *testing.T) {
	checkNames := func(cfg *config.Config, client *redis.Client) []string {
		health, err := newHealthCheck(cfg, zap.NewNop(), testDB(t), client)
		require.NoError(t, err)

		report := health.Check(context.Background())
		names := make([]string, len(report.Checks))
		for i, c := range report.Checks {
			names[i] = c.Name
		}
		return names
	}

	cfg := &config.Config{}
	cfg.App.Version = "test"

	t.Run("WithoutRedis_RegistersDatabaseOnly", func(t *testing.T) {
		names := checkNames(cfg, nil)

		assert.Contains(t, names, "database")
		assert.NotContains(t, names, "redis")
	})

	t.Run("WithRedis_RegistersRedisChecker", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		t.Cleanup(func() { client.Close() })

		names := checkNames(cfg, client)

		assert.Contains(t, names, "database")
		assert.Contains(t, names, "redis")
	})
}
