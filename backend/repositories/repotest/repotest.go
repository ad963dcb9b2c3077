// Package repotest opens throwaway SQLite databases for tests.
package repotest

import (
	"path/filepath"
	"testing"

	"bearinmind/backend/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated database that lives in the test's temp dir.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// Store returns a GormStore over a fresh database.
func Store(t *testing.T) (*repositories.GormStore, *gorm.DB) {
	t.Helper()
	db := Open(t)
	return repositories.NewGormStore(db), db
}
