package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
	"unicode"

	"github.com/joho/godotenv"
)

const (
	// DefaultCodeLifetime is how long an authorization code stays valid after generation
	DefaultCodeLifetime = 60 * time.Second

	// DefaultIDGenerationAttempts bounds the retries after an identifier collision
	DefaultIDGenerationAttempts = 3

	// DefaultMigrationsTable keeps the store's migration state apart from the host application's
	DefaultMigrationsTable = "oauth_schema_migrations"
)

// Config holds the store configuration
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBMaxConns int

	// OAuth record configuration
	CodeLifetime         time.Duration
	IDGenerationAttempts int

	// Migration configuration
	MigrationsTable string

	Environment string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		// Database defaults
		DBHost:     "localhost",
		DBPort:     5432,
		DBUser:     "",
		DBPassword: "",
		DBName:     "",
		DBSSLMode:  "disable",
		DBMaxConns: 0,

		// OAuth defaults
		CodeLifetime:         DefaultCodeLifetime,
		IDGenerationAttempts: DefaultIDGenerationAttempts,

		MigrationsTable: DefaultMigrationsTable,
		Environment:     "production",
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env from project root
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	codeLifetime, err := time.ParseDuration(getEnv("OAUTH_CODE_LIFETIME", DefaultCodeLifetime.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid OAUTH_CODE_LIFETIME: %w", err)
	}
	if codeLifetime <= 0 {
		return nil, fmt.Errorf("invalid OAUTH_CODE_LIFETIME: must be positive, got %s", codeLifetime)
	}

	attempts, err := strconv.Atoi(getEnv("OAUTH_ID_GENERATION_ATTEMPTS", strconv.Itoa(DefaultIDGenerationAttempts)))
	if err != nil {
		return nil, fmt.Errorf("invalid OAUTH_ID_GENERATION_ATTEMPTS: %w", err)
	}
	if attempts < 1 {
		return nil, fmt.Errorf("invalid OAUTH_ID_GENERATION_ATTEMPTS: must be at least 1, got %d", attempts)
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "oauth"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBMaxConns: maxConns,

		CodeLifetime:         codeLifetime,
		IDGenerationAttempts: attempts,

		MigrationsTable: getEnv("MIGRATIONS_TABLE", DefaultMigrationsTable),
		Environment:     getEnv("ENVIRONMENT", "production"),
	}, nil
}

// ConnString returns the keyword/value connection string used by pgxpool
func (c *Config) ConnString() string {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteValue(c.DBHost), c.DBPort, quoteValue(c.DBUser), quoteValue(c.DBPassword),
		quoteValue(c.DBName), quoteValue(c.DBSSLMode),
	)
	if c.DBMaxConns > 0 {
		connStr += fmt.Sprintf(" pool_max_conns=%d", c.DBMaxConns)
	}
	return connStr
}

// MigrationURL returns the postgres:// URL used by golang-migrate
func (c *Config) MigrationURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	if c.MigrationsTable != "" {
		q.Set("x-migrations-table", c.MigrationsTable)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// IsDevelopment reports whether development logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// quoteValue quotes a keyword/value connection string value when needed
func quoteValue(v string) string {
	if v == "" {
		return "''"
	}
	needsQuote := false
	escaped := make([]rune, 0, len(v))
	for _, r := range v {
		switch {
		case unicode.IsSpace(r):
			needsQuote = true
		case r == '\'' || r == '\\':
			needsQuote = true
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	if needsQuote {
		return "'" + string(escaped) + "'"
	}
	return v
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
