package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Options describes how to reach the relational store.
type Options struct {
	Driver   string
	DSN      string
	LogLevel logger.LogLevel
}

type Database struct {
	DB     *gorm.DB
	driver string
}

// NewDatabase opens a connection to the store. It does not touch the schema;
// call Migrate explicitly to apply pending migrations.
func NewDatabase(opts Options) (*Database, error) {
	dialector, err := dialectorFor(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	logLevel := opts.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db, driver: opts.Driver}
	if err := database.Ping(context.Background()); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	log.Printf("Database connection established (driver: %s)", opts.Driver)

	return database, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is empty")
	}
	switch driver {
	case DriverSQLite, "":
		return sqlite.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Driver returns the name of the driver the connection was opened with.
func (d *Database) Driver() string {
	return d.driver
}

// Ping checks that the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
