// Package config loads the service configuration. Values are layered:
// built-in defaults, then the YAML file, then a .env file, then the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config struct for YAML configuration, overridable from the environment.
type Config struct {
	MongoURI        string        `yaml:"MONGO_URI" env:"MONGO_URI"`
	MongoDatabase   string        `yaml:"MONGO_DATABASE" env:"MONGO_DATABASE"`
	MongoCollection string        `yaml:"MONGO_COLLECTION" env:"MONGO_COLLECTION"`
	ConnectTimeout  time.Duration `yaml:"MONGO_CONNECT_TIMEOUT" env:"MONGO_CONNECT_TIMEOUT"`
	GRPCPort        int           `yaml:"GRPC_PORT" env:"GRPC_PORT"`
	HTTPPort        int           `yaml:"HTTP_PORT" env:"HTTP_PORT"`
	KafkaBrokers    []string      `yaml:"KAFKA_BROKERS" env:"KAFKA_BROKERS" env-separator:","`
	Topic           string        `yaml:"TOPIC" env:"TOPIC"`
	JWTSecret       string        `yaml:"JWT_SECRET" env:"JWT_SECRET"`
	LogLevel        string        `yaml:"LOG_LEVEL" env:"LOG_LEVEL"`
}

// ErrEmptyJWTSecret is returned by Load when JWT_SECRET resolves to an empty value.
var ErrEmptyJWTSecret = errors.New("JWT_SECRET must not be empty")

// DefaultPath is used when CONFIG_PATH is not set.
var DefaultPath = filepath.Join("internal", "employee", "config", "config.yaml")

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		MongoURI:        "mongodb://localhost:27017/test",
		MongoCollection: "employees",
		ConnectTimeout:  10 * time.Second,
		GRPCPort:        50051,
		HTTPPort:        8080,
		Topic:           "employees",
		JWTSecret:       "jwt_secret",
		LogLevel:        "info",
	}
}

// Load builds the configuration. A missing YAML or .env file is not an error.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()
	if err := readFile(path, cfg); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, ErrEmptyJWTSecret
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	file, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
