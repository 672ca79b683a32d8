// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
	RequestTimeout int // per-call store deadline, seconds
}

// DatabaseConfig holds document store configuration settings
type DatabaseConfig struct {
	URI  string
	Name string
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	JWTSecret      string
	AllowedOrigins []string
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
		RequestTimeout: 5,
	}
}

// DefaultDatabaseConfig provides default database settings
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Name: "stock_board",
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env file from multiple possible locations
	envLocations := []string{
		".env",          // Current directory
		"../../.env",    // Project root when running from cmd/server
		"../../../.env", // Even higher directory
		filepath.Join(os.Getenv("GOPATH"), "src/stock-board/.env"), // GOPATH location
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		// If we couldn't find a .env file, try loading without a path
		// This is a silent failure if no .env exists, which is fine
		_ = godotenv.Load()
	}

	// Start with default server config
	serverConfig := DefaultConfig()

	// Override server settings from environment if provided
	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			serverConfig.Port = port
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}

	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}

	if timeoutStr := os.Getenv("REQUEST_TIMEOUT_SECONDS"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout > 0 {
			serverConfig.RequestTimeout = timeout
		}
	}

	// Initialize database config
	dbConfig := DefaultDatabaseConfig()

	dbConfig.URI = os.Getenv("MONGO_URI")
	if dbConfig.URI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable is required")
	}

	if name := os.Getenv("DB_NAME"); name != "" {
		dbConfig.Name = name
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	// Initialize complete config
	config := &Config{
		Server:         serverConfig,
		Database:       dbConfig,
		JWTSecret:      jwtSecret,
		AllowedOrigins: []string{"*"}, // Default to allow all origins
		Debug:          false,
	}

	// Override remaining settings from environment if provided
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}
