// Package database opens the gorm connection used by every repository.
package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gymstack/gymcore/config"
	"github.com/gymstack/gymcore/pkg/metrics"
)

// DB is the process-wide connection, set by Connect.
var DB *gorm.DB

// Connect opens the configured database into DB.
// It returns an error instead of exiting so the caller can shut down cleanly.
func Connect() error {
	db, err := Open(config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open connects to dsn with the named driver, tunes the pool and verifies the
// connection with a ping.
func Open(driver, dsn string) (*gorm.DB, error) {
	dialector, err := buildDialector(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: build dialector: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	if driver == "sqlite" {
		// One writer at a time; also keeps an in-memory database alive
		// across calls.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	if err := instrument(db); err != nil {
		return nil, fmt.Errorf("database: register callbacks: %w", err)
	}
	return db, nil
}

// Close releases the underlying pool of db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

const startKey = "gymcore:query_start"

// instrument feeds metrics.DBQueryDuration from gorm's callback chain.
func instrument(db *gorm.DB) error {
	start := func(tx *gorm.DB) { tx.InstanceSet(startKey, time.Now()) }
	finish := func(op string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			if v, ok := tx.InstanceGet(startKey); ok {
				if t, ok := v.(time.Time); ok {
					metrics.ObserveDBQuery(op, t)
				}
			}
		}
	}

	cb := db.Callback()
	regs := []error{
		cb.Create().Before("gorm:create").Register("metrics:create_start", start),
		cb.Create().After("gorm:create").Register("metrics:create_end", finish("create")),
		cb.Query().Before("gorm:query").Register("metrics:select_start", start),
		cb.Query().After("gorm:query").Register("metrics:select_end", finish("select")),
		cb.Update().Before("gorm:update").Register("metrics:update_start", start),
		cb.Update().After("gorm:update").Register("metrics:update_end", finish("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:delete_start", start),
		cb.Delete().After("gorm:delete").Register("metrics:delete_end", finish("delete")),
	}
	for _, err := range regs {
		if err != nil {
			return err
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-index violation from any
// of the supported drivers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
