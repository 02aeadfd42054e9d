package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"inventory/internal/config"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT    NOT NULL,
	price       REAL    NOT NULL,
	description TEXT    NOT NULL,
	stock       INTEGER NOT NULL
)`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS products (
	id          BIGSERIAL        PRIMARY KEY,
	name        TEXT             NOT NULL,
	price       DOUBLE PRECISION NOT NULL,
	description TEXT             NOT NULL,
	stock       INTEGER          NOT NULL
)`

// Open connects to the configured database, pins the pool to a single
// connection and makes sure the products table exists.
func Open(cfg config.DatabaseConfig, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("database driver %q is not backed by gorm", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	// One live connection for the process lifetime. For sqlite ":memory:"
	// this also keeps every statement on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to reach %s database: %w", cfg.Driver, err)
	}

	if err := EnsureSchema(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the products table if it does not exist yet.
func EnsureSchema(db *gorm.DB) error {
	schema := sqliteSchema
	if db.Dialector.Name() == "postgres" {
		schema = postgresSchema
	}
	if err := db.Exec(schema).Error; err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}
	return nil
}
