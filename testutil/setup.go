package testutil

import (
	"testing"

	"github.com/kasuganosora/fe8rguide/cache"
	"github.com/kasuganosora/fe8rguide/config"
	dbadapter "github.com/kasuganosora/fe8rguide/db"
	dbsqlite "github.com/kasuganosora/fe8rguide/db/sqlite"
	"github.com/kasuganosora/fe8rguide/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupTestDB creates a private in-memory SQLite DB and runs AutoMigrate.
// It requires no external services and is safe to use in parallel tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbadapter.Open(config.DatabaseConfig{
		Mode:       dbadapter.ModeSQLite,
		SQLitePath: dbsqlite.MemoryPath,
	})
	require.NoError(t, err, "SetupTestDB: Open")
	require.NoError(t, model.AutoMigrate(db), "SetupTestDB: AutoMigrate")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SetupTestCache creates a LocalCache (no Redis required).
func SetupTestCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewCache(cache.CacheConfig{}) // empty RedisAddr → LocalCache
	require.NoError(t, err, "SetupTestCache: NewCache")
	return c
}

// Logger returns a logger that discards everything.
func Logger() *zap.Logger { return zap.NewNop() }
