package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/punchdeck/attendance-backend-go/internal/pkg/validator"
)

type Config struct {
	App        AppConfig
	Attendance AttendanceConfig
	Directory  DirectoryConfig
	Database   DatabaseConfig
	Terminal   TerminalConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the classification thresholds and filters.
type AttendanceConfig struct {
	CheckInThreshold  string
	CheckOutThreshold string
	IgnoreWeekends    bool
}

// DirectoryConfig selects where the employee registry comes from.
type DirectoryConfig struct {
	Source string // "file" or "postgres"
	Path   string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// TerminalConfig points at the terminal gateway. An empty BaseURL means no
// device fetching is available.
type TerminalConfig struct {
	BaseURL string
	Timeout time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine; variables may come from the environment.
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Attendance configuration
	config.Attendance = AttendanceConfig{
		CheckInThreshold:  getEnv("CHECKIN_THRESHOLD", "09:02:00"),
		CheckOutThreshold: getEnv("CHECKOUT_THRESHOLD", "17:00:00"),
		IgnoreWeekends:    getEnvBool("IGNORE_WEEKENDS", false),
	}

	// Directory configuration
	config.Directory = DirectoryConfig{
		Source: getEnv("DIRECTORY_SOURCE", "file"),
		Path:   getEnv("DIRECTORY_PATH", "directory.json"),
	}

	// Database configuration (used when DIRECTORY_SOURCE=postgres)
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Terminal gateway configuration
	deviceTimeout, err := time.ParseDuration(getEnv("DEVICE_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_TIMEOUT: %w", err)
	}

	config.Terminal = TerminalConfig{
		BaseURL: getEnv("DEVICE_BASE_URL", ""),
		Timeout: deviceTimeout,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !validator.IsValidClock(c.Attendance.CheckInThreshold) {
		return fmt.Errorf("invalid CHECKIN_THRESHOLD: %s", c.Attendance.CheckInThreshold)
	}
	if !validator.IsValidClock(c.Attendance.CheckOutThreshold) {
		return fmt.Errorf("invalid CHECKOUT_THRESHOLD: %s", c.Attendance.CheckOutThreshold)
	}
	switch c.Directory.Source {
	case "file":
		if c.Directory.Path == "" {
			return fmt.Errorf("DIRECTORY_PATH is required when DIRECTORY_SOURCE=file")
		}
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when DIRECTORY_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unsupported DIRECTORY_SOURCE: %s", c.Directory.Source)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
