package db

import (
	"fmt"
	"time"

	"github.com/yigit/curso/internal/config"
	"github.com/yigit/curso/internal/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLiteDB is the single-file store opened through GORM
type SQLiteDB struct {
	DB *gorm.DB
}

// sqliteDSN appends the driver options every connection needs
func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
}

// NewSQLiteDB opens (creating if needed) the SQLite file at cfg.Database.Path
func NewSQLiteDB(cfg *config.Config) (*SQLiteDB, error) {
	gdb, err := gorm.Open(sqlite.Open(sqliteDSN(cfg.Database.Path)), &gorm.Config{
		// Map driver constraint errors onto gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite connection pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to establish sqlite connection: %w", err)
	}

	logger.Debug().Str("path", cfg.Database.Path).Msg("SQLite database opened")
	return &SQLiteDB{DB: gdb}, nil
}

// Close closes the underlying connection pool
func (db *SQLiteDB) Close() {
	if db.DB == nil {
		return
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close sqlite database")
		}
	}
}
