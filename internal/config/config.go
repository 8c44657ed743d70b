// Package config loads server settings from an optional YAML file, then
// environment variables, then built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/thenoetrevino/todox/internal/database"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Defaults
const (
	DefaultAddr            = ":8000"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMongoDatabase   = "todox"
	DefaultJWTSecret       = "change-me-in-production"
	DefaultJWTExpiresIn    = 3600
	DefaultJWTAlgorithm    = "HS256"
	DefaultBcryptCost      = 12
	DefaultCORSOrigin      = "http://localhost:3000"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	CORS    CORSConfig    `yaml:"cors"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"TODOX_ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"TODOX_SHUTDOWN_TIMEOUT"`
}

// StorageConfig selects and locates the durable store
type StorageConfig struct {
	Driver        string `yaml:"driver"         env:"TODOX_STORAGE_DRIVER"`
	SQLitePath    string `yaml:"sqlite_path"    env:"TODOX_SQLITE_PATH"`
	MongoURI      string `yaml:"mongo_uri"      env:"MONGODB_URI"`
	MongoDatabase string `yaml:"mongo_database" env:"DATABASE_NAME"`
}

// AuthConfig controls password hashing and token signing
type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"       env:"JWT_SECRET"`
	JWTExpiresIn    int    `yaml:"jwt_expires_in"   env:"JWT_EXPIRES_IN"`
	JWTAlgorithm    string `yaml:"jwt_algorithm"    env:"JWT_ALGORITHM"`
	BcryptCost      int    `yaml:"bcrypt_cost"      env:"TODOX_BCRYPT_COST"`
	HashConcurrency int    `yaml:"hash_concurrency" env:"TODOX_HASH_CONCURRENCY"`
}

// TokenTTL returns JWTExpiresIn as a duration
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.JWTExpiresIn) * time.Second
}

// CORSConfig lists the browser origins allowed to call the API
type CORSConfig struct {
	Origins []string `yaml:"origins" env:"CORS_ORIGINS" envSeparator:","`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `yaml:"level"  env:"TODOX_LOG_LEVEL"`
	Format string `yaml:"format" env:"TODOX_LOG_FORMAT"`
	File   string `yaml:"file"   env:"TODOX_LOG_FILE"`
}

// Load reads config from path, or from the user's config directory when path
// is empty. A missing default file is not an error; a missing explicit one is.
func Load(path string) (*Config, error) {
	var config Config

	explicit := path != ""
	if !explicit {
		p, err := getConfigPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// Defaults only
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// Environment variables win over the file
	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns a config with every default applied
func Default() *Config {
	var config Config
	_ = config.applyDefaults()
	return &config
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "todox", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "todox", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() error {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)
	if c.Storage.SQLitePath == "" {
		path, err := database.DefaultPath()
		if err != nil {
			return err
		}
		c.Storage.SQLitePath = path
	}
	if c.Storage.MongoDatabase == "" {
		c.Storage.MongoDatabase = DefaultMongoDatabase
	}

	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = DefaultJWTSecret
	}
	if c.Auth.JWTExpiresIn == 0 {
		c.Auth.JWTExpiresIn = DefaultJWTExpiresIn
	}
	if c.Auth.JWTAlgorithm == "" {
		c.Auth.JWTAlgorithm = DefaultJWTAlgorithm
	}
	c.Auth.JWTAlgorithm = strings.ToUpper(c.Auth.JWTAlgorithm)
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = DefaultBcryptCost
	}
	if c.Auth.HashConcurrency == 0 {
		c.Auth.HashConcurrency = runtime.NumCPU()
	}

	if len(c.CORS.Origins) == 0 {
		c.CORS.Origins = []string{DefaultCORSOrigin}
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	return nil
}

// Validate reports the first setting that cannot work
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
	case DriverMongo:
		if c.Storage.MongoURI == "" {
			return errors.New("storage.mongo_uri (MONGODB_URI) is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q: must be %s or %s", c.Storage.Driver, DriverSQLite, DriverMongo)
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret (JWT_SECRET) cannot be empty")
	}
	if c.Auth.JWTExpiresIn <= 0 {
		return fmt.Errorf("auth.jwt_expires_in must be positive, got %d", c.Auth.JWTExpiresIn)
	}
	switch c.Auth.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported auth.jwt_algorithm %q: must be HS256, HS384 or HS512", c.Auth.JWTAlgorithm)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}
	if c.Auth.HashConcurrency < 0 {
		return fmt.Errorf("auth.hash_concurrency cannot be negative, got %d", c.Auth.HashConcurrency)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout cannot be negative, got %s", c.Server.ShutdownTimeout)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q: must be text or json", c.Log.Format)
	}
	return nil
}

// UsesDefaultSecret reports whether tokens are signed with the built-in secret
func (c *Config) UsesDefaultSecret() bool {
	return c.Auth.JWTSecret == DefaultJWTSecret
}
