package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported storage drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// AdminCredential is one entry of the externally configured admin list.
// PasswordHash (bcrypt) wins over Password when both are set.
type AdminCredential struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		TxTimeout       string `yaml:"tx_timeout" env:"DB_TX_TIMEOUT"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		TTL      string `yaml:"ttl" env:"REDIS_TTL"`
	} `yaml:"redis"`

	Auth struct {
		Secret   string            `yaml:"secret" env:"AUTH_SECRET"`
		TokenTTL string            `yaml:"token_ttl" env:"AUTH_TOKEN_TTL"`
		Issuer   string            `yaml:"issuer" env:"AUTH_ISSUER"`
		Admins   []AdminCredential `yaml:"admins"`
		// AdminList is the env form of Admins: "user:secret,user2:secret2"
		AdminList string `yaml:"-" env:"AUTH_ADMINS"`
	} `yaml:"auth"`

	Events struct {
		BufferSize int `yaml:"buffer_size" env:"EVENTS_BUFFER_SIZE"`
	} `yaml:"events"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Seed struct {
		File string `yaml:"file" env:"SEED_FILE"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env only fills variables that are not already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := applyEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if config.Auth.AdminList != "" {
		admins, err := ParseAdminList(config.Auth.AdminList)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_ADMINS: %w", err)
		}
		config.Auth.Admins = admins
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.ShutdownTimeout = "10s"

	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "marksheet"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.TxTimeout = "30s"
	config.Database.MigrationsDir = "migrations"

	config.Redis.TTL = "10m"

	config.Auth.TokenTTL = "12h"
	config.Auth.Issuer = "marksheet"

	config.Events.BufferSize = 64

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required")
	}

	for name, value := range map[string]string{
		"server shutdown timeout":    config.Server.ShutdownTimeout,
		"database conn max lifetime": config.Database.ConnMaxLifetime,
		"database tx timeout":        config.Database.TxTimeout,
		"redis ttl":                  config.Redis.TTL,
		"auth token ttl":             config.Auth.TokenTTL,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Events.BufferSize <= 0 {
		return fmt.Errorf("events buffer size must be positive")
	}

	for i, admin := range config.Auth.Admins {
		if admin.Username == "" || (admin.Password == "" && admin.PasswordHash == "") {
			return fmt.Errorf("admin credential #%d needs a username and a password or password_hash", i+1)
		}
	}

	return nil
}

// ParseAdminList parses "user:secret,user2:secret2". A secret starting with
// "$2" is treated as a bcrypt hash.
func ParseAdminList(s string) ([]AdminCredential, error) {
	var admins []AdminCredential
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		username, secret, ok := strings.Cut(pair, ":")
		if !ok || username == "" || secret == "" {
			return nil, fmt.Errorf("malformed admin entry %q", pair)
		}
		cred := AdminCredential{Username: username}
		if strings.HasPrefix(secret, "$2") {
			cred.PasswordHash = secret
		} else {
			cred.Password = secret
		}
		admins = append(admins, cred)
	}
	return admins, nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// Duration parses one of the already validated duration fields.
func Duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
