package config

import "fmt"

// Config holds the application configuration
type Config struct {
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080"`
	WorkerCount int    `envconfig:"WORKER_COUNT" default:"10"`
	Database    DatabaseConfig
	LockStats   LockStatsConfig
	Admin       AdminConfig
}

// DatabaseConfig holds the database connection configuration
type DatabaseConfig struct {
	Driver       string `envconfig:"DB_DRIVER" default:"postgres"`
	Username     string `envconfig:"DB_USERNAME"`
	Password     string `envconfig:"DB_PASSWORD"`
	Host         string `envconfig:"DB_HOST"`
	Port         string `envconfig:"DB_PORT"`
	Database     string `envconfig:"DB_DATABASE"`
	SSLMode      string `envconfig:"DB_SSL_MODE" default:"require"`
	PoolMaxConns int    `envconfig:"DB_POOL_MAX_CONNS" default:"4"`
	SQLitePath   string `envconfig:"DB_SQLITE_PATH" default:"lockstats.db"`
}

// LockStatsConfig holds the settings of the lock history console.
type LockStatsConfig struct {
	PageSize      int    `envconfig:"LOCKSTATS_PAGE_SIZE" default:"30"`
	Timezone      string `envconfig:"LOCKSTATS_TIMEZONE" default:"UTC"`
	RetentionDays int    `envconfig:"LOCKSTATS_RETENTION_DAYS" default:"0"`
}

// AdminConfig holds the credentials protecting the console and the API.
// An empty password disables authentication.
type AdminConfig struct {
	Username string `envconfig:"ADMIN_USERNAME" default:"admin"`
	Password string `envconfig:"ADMIN_PASSWORD"`
}

// ToMigrationUri returns a string for the migration package with the correct prefix
func (d DatabaseConfig) ToMigrationUri() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
		d.SSLMode,
	)
}

// ToDbConnectionUri returns a connection URI for the configured driver.
// For sqlite it is the database file path.
func (d DatabaseConfig) ToDbConnectionUri() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
		d.SSLMode,
	)
}

// AuthEnabled reports whether the console requires credentials.
func (a AdminConfig) AuthEnabled() bool {
	return a.Password != ""
}
