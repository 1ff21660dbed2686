// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backend kinds for the storage gateway.
const (
	BackendEmbedded = "embedded"
	BackendRemote   = "remote"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Server  ServerConfig
	Storage StorageConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// StorageConfig selects and parameterizes the storage backend.
//
// The backend choice is a pure configuration decision resolved once at
// gateway initialization. Address and credentials are required only for
// the remote kind; the embedded kind uses the filesystem path instead.
type StorageConfig struct {
	Kind      string        // "embedded" or "remote"
	Path      string        // embedded: on-disk database directory
	Address   string        // remote: endpoint URL (e.g. ws://localhost:8000)
	Namespace string        // remote: namespace name
	Database  string        // remote: database name
	Username  string        // remote: authentication username
	Password  string        // remote: authentication password
	OpTimeout time.Duration // bound on a single storage operation (default: 10s)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")

	// Server flags
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	// Storage flags
	storageKind := flag.String("storage-kind", "", "Storage backend kind: embedded or remote (default: embedded)")
	storagePath := flag.String("storage-path", "", "Path for the embedded database (default: ~/IdeaBoard/db)")
	dbAddress := flag.String("db-address", "", "Remote database endpoint URL")
	dbNamespace := flag.String("db-namespace", "", "Remote database namespace (default: ideas_ns)")
	dbDatabase := flag.String("db-database", "", "Remote database name (default: ideas_db)")
	dbUsername := flag.String("db-username", "", "Remote database username")
	dbPassword := flag.String("db-password", "", "Remote database password")
	opTimeout := flag.String("storage-op-timeout", "", "Per-operation storage timeout (default: 10s)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Storage: StorageConfig{
			Kind:      getConfigValue(*storageKind, "STORAGE_KIND", BackendEmbedded),
			Path:      getConfigValue(*storagePath, "STORAGE_PATH", ""),
			Address:   getConfigValue(*dbAddress, "DB_ADDRESS", ""),
			Namespace: getConfigValue(*dbNamespace, "DB_NAMESPACE", "ideas_ns"),
			Database:  getConfigValue(*dbDatabase, "DB_DATABASE", "ideas_db"),
			Username:  getConfigValue(*dbUsername, "DB_USERNAME", ""),
			Password:  getConfigValue(*dbPassword, "DB_PASSWORD", ""),
		},
	}

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	// Parse storage operation timeout.
	opTimeoutStr := getConfigValue(*opTimeout, "STORAGE_OP_TIMEOUT", "10s")
	opTimeoutDuration, err := time.ParseDuration(opTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid storage op timeout %q: %w", opTimeoutStr, err)
	}
	cfg.Storage.OpTimeout = opTimeoutDuration

	// Expand and validate the embedded database path.
	if err := cfg.expandStoragePath(); err != nil {
		return nil, fmt.Errorf("invalid storage path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return c.Storage.Validate()
}

// Validate checks backend-kind-specific requirements.
func (s *StorageConfig) Validate() error {
	switch s.Kind {
	case BackendEmbedded:
		if s.Path == "" {
			return errors.New("storage path cannot be empty after expansion")
		}
	case BackendRemote:
		if s.Address == "" {
			return errors.New("DB_ADDRESS is required for the remote backend")
		}
		if s.Username == "" || s.Password == "" {
			return errors.New("DB_USERNAME and DB_PASSWORD are required for the remote backend")
		}
		if s.Namespace == "" || s.Database == "" {
			return errors.New("DB_NAMESPACE and DB_DATABASE are required for the remote backend")
		}
	default:
		return fmt.Errorf("invalid storage kind: %s (must be %s or %s)", s.Kind, BackendEmbedded, BackendRemote)
	}

	if s.OpTimeout <= 0 {
		return errors.New("storage op timeout must be positive")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandStoragePath expands ~ and makes the embedded database path absolute.
// Only consulted by the embedded backend; left alone for the remote kind so
// a remote deployment needs no filesystem layout.
func (c *Config) expandStoragePath() error {
	if c.Storage.Kind != BackendEmbedded {
		return nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "IdeaBoard", "db")

	expanded, err := expandPath(c.Storage.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.Path = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
