package config

// Default paths for the SQLite databases
const (
	// DefaultDatabasePath is the default path for the inventory database
	DefaultDatabasePath = "./bookstore.db"

	// DefaultTasksDatabasePath is the default path for the task queue database
	DefaultTasksDatabasePath = "./bookstore-tasks.db"

	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"
)

// Default ports for networked database drivers
const (
	DefaultMySQLPort    = 3306
	DefaultPostgresPort = 5432
)
