package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm/logger"
)

type (
	Config struct {
		HTTP
		Global
		Database
		CORS
		RateLimit
		Audit
		Tasks
		Client
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver      string // sqlite, mysql or postgres
		Path        string // SQLite file
		DSN         string // Overrides the DSN built from the fields below
		Host        string
		Port        int
		User        string
		Password    string
		Name        string
		SSLMode     string // postgres only
		AutoMigrate bool
		LogLevel    string // silent, error, warn, info
	}
	CORS struct {
		AllowedOrigins []string
	}
	RateLimit struct {
		RequestsPerSecond float64 // 0 disables rate limiting
		Burst             int
	}
	Audit struct {
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
		CleanupEnabled  bool
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
		DatabasePath    string
	}
	Client struct {
		APIURL  string
		Timeout time.Duration
	}
)

// NewConfig reads configuration from the environment, after loading
// DefaultEnvFile if it exists.
func NewConfig() *Config {
	if err := LoadEnvFile(DefaultEnvFile); err != nil {
		log.Printf("Warning: failed to load %s: %v", DefaultEnvFile, err)
	}
	return FromViper(newViper())
}

// LoadEnvFile loads variables from path without overriding ones already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Database defaults
	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_host", "localhost")
	v.SetDefault("database_port", 0) // Driver default
	v.SetDefault("database_user", "root")
	v.SetDefault("database_password", "")
	v.SetDefault("database_name", "bookstore")
	v.SetDefault("database_ssl_mode", "disable")
	v.SetDefault("database_auto_migrate", false)
	v.SetDefault("database_log_level", "warn")

	// HTTP middleware defaults
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 20)

	// Audit defaults
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("audit_cleanup_enabled", true)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)

	// Client defaults
	v.SetDefault("api_url", "http://localhost:3000")
	v.SetDefault("client_timeout", "10s")

	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:      strings.ToLower(v.GetString("DATABASE_DRIVER")),
			Path:        v.GetString("DATABASE_PATH"),
			DSN:         v.GetString("DATABASE_DSN"),
			Host:        v.GetString("DATABASE_HOST"),
			Port:        v.GetInt("DATABASE_PORT"),
			User:        v.GetString("DATABASE_USER"),
			Password:    v.GetString("DATABASE_PASSWORD"),
			Name:        v.GetString("DATABASE_NAME"),
			SSLMode:     v.GetString("DATABASE_SSL_MODE"),
			AutoMigrate: v.GetBool("DATABASE_AUTO_MIGRATE"),
			LogLevel:    v.GetString("DATABASE_LOG_LEVEL"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimit{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		Audit: Audit{
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
			CleanupEnabled:  v.GetBool("AUDIT_CLEANUP_ENABLED"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
		},
		Client: Client{
			APIURL:  strings.TrimRight(v.GetString("API_URL"), "/"),
			Timeout: v.GetDuration("CLIENT_TIMEOUT"),
		},
	}
}

// ConnectionString returns the DSN for the configured driver.
// An explicit DATABASE_DSN always wins.
func (d Database) ConnectionString() (string, error) {
	if d.DSN != "" {
		return d.DSN, nil
	}

	switch d.Driver {
	case "sqlite", "":
		if d.Path == "" {
			return "", fmt.Errorf("DATABASE_PATH is required for sqlite")
		}
		return d.Path + "?_busy_timeout=5000&_foreign_keys=on", nil
	case "mysql":
		port := d.Port
		if port == 0 {
			port = DefaultMySQLPort
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User, d.Password, d.Host, port, d.Name), nil
	case "postgres":
		port := d.Port
		if port == 0 {
			port = DefaultPostgresPort
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, port, d.User, d.Password, d.Name, d.SSLMode), nil
	default:
		return "", fmt.Errorf("unsupported DATABASE_DRIVER %q", d.Driver)
	}
}

// GormLogLevel maps DATABASE_LOG_LEVEL onto the gorm logger levels.
func (d Database) GormLogLevel() logger.LogLevel {
	switch strings.ToLower(d.LogLevel) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
