package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"transport_registry/internal/logger"
)

// Config is the service configuration. Values come from, in order of
// precedence: environment (including .env), the optional YAML file named by
// CONFIG_FILE, and the defaults below.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Log      logger.Options `yaml:"log"`
}

type HTTPConfig struct {
	Addr    string `yaml:"addr" validate:"required"`
	GinMode string `yaml:"gin_mode" validate:"omitempty,oneof=debug release test"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	Host       string `yaml:"host" validate:"required_if=Driver postgres"`
	Port       string `yaml:"port" validate:"required_if=Driver postgres"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name" validate:"required_if=Driver postgres"`
	SSLMode    string `yaml:"sslmode"`
	TimeZone   string `yaml:"timezone"`
	PGDriver   string `yaml:"pg_driver" validate:"omitempty,oneof=pgx pq"`
	SQLitePath string `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{Addr: "0.0.0.0:8080"},
		Database: DatabaseConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Password:   "password",
			Name:       "transport",
			SSLMode:    "disable",
			TimeZone:   "UTC",
			PGDriver:   "pgx",
			SQLitePath: "transport.db",
		},
		Log: logger.Options{
			File:       "./logs/app.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 7,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Load builds and validates the configuration.
func Load() (*Config, error) {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found – relying on env vars")
	}

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.HTTP.Addr, "HTTP_ADDR")
	setString(&cfg.HTTP.GinMode, "GIN_MODE")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setString(&cfg.Database.TimeZone, "DB_TIMEZONE")
	setString(&cfg.Database.PGDriver, "DB_PG_DRIVER")
	setString(&cfg.Database.SQLitePath, "SQLITE_PATH")

	setString(&cfg.Log.File, "LOG_FILE")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setInt(&cfg.Log.MaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&cfg.Log.MaxBackups, "LOG_MAX_BACKUPS")
	setInt(&cfg.Log.MaxAgeDays, "LOG_MAX_AGE_DAYS")
	setBool(&cfg.Log.Compress, "LOG_COMPRESS")
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func setString(dst *string, key string) {
	*dst = getEnv(key, *dst)
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("ignoring non-numeric value %q", v)
		return
	}
	*dst = n
}

func setBool(dst *bool, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("ignoring non-boolean value %q", v)
		return
	}
	*dst = b
}
