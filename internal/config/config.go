package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the desk client and the development API.
type Config struct {
	Environment string
	API         APIConfig
	Session     SessionConfig
	Log         LogConfig
	Server      ServerConfig
	Database    DatabaseConfig
}

// APIConfig describes the remote clinic API the desk talks to.
type APIConfig struct {
	BaseURL string
}

// SessionConfig holds where the desk keeps its login between runs.
type SessionConfig struct {
	Path string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// ServerConfig holds the development API listener settings
type ServerConfig struct {
	Port                 string
	Origin               string
	Storage              string
	RequireAuth          bool
	JWTSecret            string
	JWTExpirationMinutes int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// Storage backends understood by the development API.
const (
	StorageMySQL    = "mysql"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	storage := strings.ToLower(getEnv("STORAGE", StorageMySQL))

	dbConfig := DatabaseConfig{
		Driver:   storage,
		Host:     getEnv("DB_HOST", "localhost"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "mediassist"),
	}

	switch storage {
	case StoragePostgres:
		dbConfig.Port = getEnv("DB_PORT", "5432")
		dbConfig.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			dbConfig.Host, dbConfig.Username, dbConfig.Password, dbConfig.Name, dbConfig.Port)
	default:
		dbConfig.Port = getEnv("DB_PORT", "3306")
		// parseTime lets appointment timestamps scan into time.Time
		dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "480"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	requireAuth, err := strconv.ParseBool(getEnv("REQUIRE_AUTH", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUIRE_AUTH: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5000/"),
		},
		Session: SessionConfig{
			Path: getEnv("SESSION_FILE", defaultSessionPath()),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Server: ServerConfig{
			Port:                 getEnv("PORT", "5000"),
			Origin:               getEnv("ORIGIN", "http://localhost:5173"),
			Storage:              storage,
			RequireAuth:          requireAuth,
			JWTSecret:            getEnv("JWT_SECRET", ""),
			JWTExpirationMinutes: jwtExpMinutes,
		},
		Database: dbConfig,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDev reports whether the configuration targets a development environment.
func (c *Config) IsDev() bool {
	return c.Environment == "development"
}

// Validate checks the values LoadConfig cannot default its way out of.
func (c *Config) Validate() error {
	var errs []string

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("API_BASE_URL %q is not an absolute URL", c.API.BaseURL))
	}

	switch c.Server.Storage {
	case StorageMySQL, StoragePostgres, StorageMemory:
	default:
		errs = append(errs, fmt.Sprintf("STORAGE must be mysql, postgres or memory, got %q", c.Server.Storage))
	}

	if c.Server.JWTSecret == "" && !c.IsDev() {
		errs = append(errs, "JWT_SECRET is required outside development")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// SigningSecret returns the JWT secret, falling back to a fixed development value.
func (s ServerConfig) SigningSecret() string {
	if s.JWTSecret == "" {
		return "mediassist-development-secret"
	}
	return s.JWTSecret
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mediassist-session.json"
	}
	return filepath.Join(home, ".mediassist", "session.json")
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
