// Package testutil opens a throwaway store for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a temp-file sqlite DB with foreign keys enforced, runs the
// production migrations against it and installs it as the process DB for the
// duration of the test. Timestamps are written in UTC.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "benela.db")
	cfg := config.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)
	cfg.NowFunc = func() time.Time { return time.Now().UTC() }

	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	prev := config.GetDB()
	config.SetDB(db)
	t.Cleanup(func() {
		config.SetDB(prev)
		_ = sqlDB.Close()
	})

	require.NoError(t, models.MigrateTable())
	return db
}
