package database

import (
	"strings"

	"empire-builder/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a GORM DB. postgres:// and postgresql:// DSNs go to Postgres;
// anything else is treated as a SQLite file path (":memory:" works for tests).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// when the Postgres side sits behind a connection pooler.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if isPostgres(dsn) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// AutoMigrate creates the saves table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.SaveRecord{})
}
