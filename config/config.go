// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Email     EmailConfig
	AI        AIConfig
	Events    EventsConfig
	Dashboard DashboardConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Environment     string
	AppBaseURL      string
}

// IsDevelopment reports whether the server runs in development mode.
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development"
}

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig holds Redis configuration. An empty host disables the cache.
type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	SnapshotTTL time.Duration
}

// Enabled reports whether a redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds JWT token configuration.
type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BcryptCost         int
}

// EmailConfig holds email service configuration. An empty API key leaves
// jobs queued and the worker stopped.
type EmailConfig struct {
	ResendAPIKey  string
	FromName      string
	FromEmail     string
	WorkerEnabled bool
	PollInterval  time.Duration
	BatchSize     int
}

// SendingEnabled reports whether Resend is configured.
func (e EmailConfig) SendingEnabled() bool {
	return e.ResendAPIKey != ""
}

// AIConfig holds the Gemini configuration. An empty key disables the AI parser.
type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
}

// EventsConfig holds the AMQP configuration. An empty URL disables events.
type EventsConfig struct {
	AMQPURL  string
	Exchange string
	Queue    string
}

// Enabled reports whether a broker is configured.
func (e EventsConfig) Enabled() bool {
	return e.AMQPURL != ""
}

// DashboardConfig holds dashboard defaults.
type DashboardConfig struct {
	DefaultCurrency string
	SelectableYears int
}

// RateLimitConfig holds the auth rate limiter settings. Zero attempts
// disables limiting.
type RateLimitConfig struct {
	MaxAttempts int
	Window      time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			Environment:     getEnv("ENV", "development"),
			AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverPostgres),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "app_user"),
			Password:        getEnv("DB_PASSWORD", "app_password"),
			Name:            getEnv("DB_NAME", "expense_tracker"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "expense_tracker.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:        getEnv("REDIS_HOST", ""),
			Port:        getEnvAsInt("REDIS_PORT", 6379),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			SnapshotTTL: getEnvAsDuration("CACHE_SNAPSHOT_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "change-me-in-production"),
			AccessTokenExpiry:  getEnvAsDuration("JWT_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvAsDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
		},
		Email: EmailConfig{
			ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
			FromName:      getEnv("EMAIL_FROM_NAME", "Expense Tracker"),
			FromEmail:     getEnv("EMAIL_FROM_ADDRESS", "onboarding@resend.dev"),
			WorkerEnabled: getEnvAsBool("EMAIL_WORKER_ENABLED", true),
			PollInterval:  getEnvAsDuration("EMAIL_WORKER_POLL_INTERVAL", 5*time.Second),
			BatchSize:     getEnvAsInt("EMAIL_WORKER_BATCH_SIZE", 10),
		},
		AI: AIConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		},
		Events: EventsConfig{
			AMQPURL:  getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "expense-tracker.events"),
			Queue:    getEnv("AMQP_QUEUE", ""),
		},
		Dashboard: DashboardConfig{
			DefaultCurrency: getEnv("DEFAULT_CURRENCY", "BRL"),
			SelectableYears: getEnvAsInt("SELECTABLE_YEARS", 5),
		},
		RateLimit: RateLimitConfig{
			MaxAttempts: getEnvAsInt("AUTH_RATE_LIMIT_ATTEMPTS", 5),
			Window:      getEnvAsDuration("AUTH_RATE_LIMIT_WINDOW", time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
