package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultEnvFile = ".env"

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Kafka    KafkaConfig
}

type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// KafkaConfig holds the event producer configuration. Events are not
// published when Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Options points Load at optional files. Empty paths fall back to ".env" and
// the CONFIG_FILE variable respectively.
type Options struct {
	EnvFile    string
	ConfigFile string
}

// Load resolves every key from the process environment first, then the YAML
// file, then the built-in default. A .env file only fills variables that are
// not already set in the environment.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	src, err := newSource(configFile)
	if err != nil {
		return nil, err
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(src.get("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(src.get("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(src.get("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}
	connectTimeout, err := time.ParseDuration(src.get("DB_CONNECT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:           src.get("DB_HOST", "localhost"),
		Port:           dbPort,
		User:           src.get("DB_USER", "postgres"),
		Password:       src.get("DB_PASSWORD", ""),
		Name:           src.get("DB_NAME", "biztime"),
		SSLMode:        src.get("DB_SSL_MODE", "disable"),
		MaxConns:       int32(maxConns),
		MinConns:       int32(minConns),
		ConnectTimeout: connectTimeout,
	}

	// Application configuration
	appPort, err := strconv.Atoi(src.get("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            src.get("APP_ENV", "development"),
		LogLevel:       strings.ToLower(src.get("LOG_LEVEL", "info")),
		AllowedOrigins: splitList(src.get("CORS_ALLOWED_ORIGINS", "*")),
	}

	// Kafka configuration
	config.Kafka = KafkaConfig{
		Brokers: splitList(src.get("KAFKA_BROKERS", "")),
		Topic:   src.get("KAFKA_TOPIC", "biztime.events"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("DB_PORT must be between 1 and 65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS, got %d", c.Database.MinConns)
	}
	if c.Database.ConnectTimeout <= 0 {
		return fmt.Errorf("DB_CONNECT_TIMEOUT must be positive")
	}
	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535, got %d", c.App.Port)
	}
	if _, err := parseLevel(c.App.LogLevel); err != nil {
		return err
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": []string{c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

// SlogLevel returns the configured LOG_LEVEL as a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.App.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return level, nil
}

// loadEnvFile ignores a missing default .env but not a missing explicit one.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

type source struct {
	file map[string]string
}

func newSource(configFile string) (source, error) {
	src := source{file: map[string]string{}}
	if configFile == "" {
		return src, nil
	}

	raw, err := os.ReadFile(configFile)
	if err != nil {
		return src, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var values map[string]interface{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return src, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	for key, value := range values {
		switch v := value.(type) {
		case nil:
		case []interface{}:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, fmt.Sprint(item))
			}
			src.file[key] = strings.Join(items, ",")
		default:
			src.file[key] = fmt.Sprint(v)
		}
	}
	return src, nil
}

func (s source) get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := s.file[key]; value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
