package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all configuration for the desk.
type Config struct {
	AppMode         string
	DBPath          string
	Storage         string // "sqlite" or "memory"
	CatalogPath     string
	LogLevel        string
	MessageDuration time.Duration
	BcryptCost      int
}

// Load reads configuration from a .env file, if present, and the environment.
func Load() (*Config, error) {
	// A missing .env is normal; only a malformed one is worth failing on.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	storage := strings.ToLower(getEnv("LIBRARY_STORAGE", "sqlite"))
	if storage != "sqlite" && storage != "memory" {
		return nil, fmt.Errorf("invalid LIBRARY_STORAGE: '%s' (must be 'sqlite' or 'memory')", storage)
	}

	seconds, err := strconv.Atoi(getEnv("LIBRARY_MESSAGE_SECONDS", "3"))
	if err != nil || seconds <= 0 {
		return nil, fmt.Errorf("invalid LIBRARY_MESSAGE_SECONDS: %q", os.Getenv("LIBRARY_MESSAGE_SECONDS"))
	}

	cost, err := strconv.Atoi(getEnv("LIBRARY_BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid LIBRARY_BCRYPT_COST: %q", os.Getenv("LIBRARY_BCRYPT_COST"))
	}

	return &Config{
		AppMode:         appMode,
		DBPath:          getEnv("LIBRARY_DB", "library.db"),
		Storage:         storage,
		CatalogPath:     getEnv("LIBRARY_CATALOG", ""),
		LogLevel:        getEnv("LIBRARY_LOG_LEVEL", "warn"),
		MessageDuration: time.Duration(seconds) * time.Second,
		BcryptCost:      cost,
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// InMemory reports whether the session slot should live only in memory.
func (c *Config) InMemory() bool {
	return c.Storage == "memory"
}

// NewLogger builds a console logger in dev mode and a JSON logger in prod,
// at the configured level. Logs go to stderr so they stay out of the shell.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	var zc zap.Config
	if c.IsDev() {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
