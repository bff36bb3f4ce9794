package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT verification configuration. Tokens are issued by the
// identity service; this application only verifies them.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the attendance policy knobs. These are explicit
// configuration passed into the classifier and the reconciliation job, not
// ambient globals.
type AttendanceConfig struct {
	LateThresholdHour   int // local time-of-day after which a check-in is late
	LateThresholdMinute int
	AutoCheckoutHour    int // records still open past this time get a synthetic checkout
	AutoCheckoutMinute  int
	WFHAccuracyMeters   float64 // accuracy reported for substituted WFH coordinates
	Timezone            string  // local calendar used for "today" in the daily job
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hadir"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance policy configuration
	lateHour, err := strconv.Atoi(getEnv("LATE_THRESHOLD_HOUR", "9"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_THRESHOLD_HOUR: %w", err)
	}
	lateMinute, err := strconv.Atoi(getEnv("LATE_THRESHOLD_MINUTE", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_THRESHOLD_MINUTE: %w", err)
	}
	autoOutHour, err := strconv.Atoi(getEnv("AUTO_CHECKOUT_HOUR", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_CHECKOUT_HOUR: %w", err)
	}
	autoOutMinute, err := strconv.Atoi(getEnv("AUTO_CHECKOUT_MINUTE", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_CHECKOUT_MINUTE: %w", err)
	}
	wfhAccuracy, err := strconv.ParseFloat(getEnv("WFH_ACCURACY_METERS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid WFH_ACCURACY_METERS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		LateThresholdHour:   lateHour,
		LateThresholdMinute: lateMinute,
		AutoCheckoutHour:    autoOutHour,
		AutoCheckoutMinute:  autoOutMinute,
		WFHAccuracyMeters:   wfhAccuracy,
		Timezone:            getEnv("APP_TIMEZONE", "Asia/Jakarta"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.LateThresholdHour < 0 || c.Attendance.LateThresholdHour > 23 {
		return fmt.Errorf("LATE_THRESHOLD_HOUR must be between 0 and 23")
	}
	if c.Attendance.LateThresholdMinute < 0 || c.Attendance.LateThresholdMinute > 59 {
		return fmt.Errorf("LATE_THRESHOLD_MINUTE must be between 0 and 59")
	}
	if c.Attendance.AutoCheckoutHour < 0 || c.Attendance.AutoCheckoutHour > 23 {
		return fmt.Errorf("AUTO_CHECKOUT_HOUR must be between 0 and 23")
	}
	if c.Attendance.WFHAccuracyMeters <= 0 {
		return fmt.Errorf("WFH_ACCURACY_METERS must be positive")
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
