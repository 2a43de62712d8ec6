package database

import (
	"context"
	"fmt"
	"time"

	"chatapp/config"
	"chatapp/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported values of DB_DRIVER.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Connect opens the database configured by cfg and verifies it answers a ping.
func Connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.LogMode == logger.DevelopmentMode {
		level = gormlogger.Info
	}
	return Open(ctx, cfg.DBDriver, cfg.DBURL, cfg.DBMaxOpenConns, level)
}

func Open(ctx context.Context, driver, dsn string, maxOpenConns int, level gormlogger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
		// Maps unique violations to gorm.ErrDuplicatedKey for both dialects.
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}

	// Connection pool settings
	if driver == DriverSQLite {
		// sqlite allows a single writer; an in-memory database also lives only as long as its connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if maxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(maxOpenConns)
		} else {
			sqlDB.SetMaxOpenConns(100)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := HealthCheck(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return db, nil
}

func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
