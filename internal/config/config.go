package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	DBSchema       string `mapstructure:"DB_SCHEMA"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`

	HTTPAddr       string   `mapstructure:"HTTP_ADDR"`
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`
	SeedFile    string `mapstructure:"SEED_FILE"`

	OTelEnabled          bool          `mapstructure:"OTEL_ENABLED"`
	OTLPEndpoint         string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelServiceName      string        `mapstructure:"OTEL_SERVICE_NAME"`
	OTelServiceNamespace string        `mapstructure:"OTEL_SERVICE_NAMESPACE"`
	OTelServiceVersion   string        `mapstructure:"OTEL_SERVICE_VERSION"`
	OTelTracesSampler    string        `mapstructure:"OTEL_TRACES_SAMPLER"`
	OTelMetricsInterval  time.Duration `mapstructure:"OTEL_METRICS_EXPORT_INTERVAL"`
}

var keys = []string{
	"ENV", "LOG_LEVEL",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_SCHEMA",
	"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"HTTP_ADDR", "ALLOWED_ORIGINS",
	"RABBITMQ_URL", "SEED_FILE",
	"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME", "OTEL_SERVICE_NAMESPACE",
	"OTEL_SERVICE_VERSION", "OTEL_TRACES_SAMPLER", "OTEL_METRICS_EXPORT_INTERVAL",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_SCHEMA", "clinic")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_SERVICE_NAME", "hospitali")
	v.SetDefault("OTEL_SERVICE_NAMESPACE", "hospitali")
	v.SetDefault("OTEL_SERVICE_VERSION", "1.0.0")
	v.SetDefault("OTEL_TRACES_SAMPLER", "always_on")
	v.SetDefault("OTEL_METRICS_EXPORT_INTERVAL", 30*time.Second)

	// Bind explicitly so Unmarshal sees env-only keys
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env is optional, but a present one must parse
	if err := v.ReadInConfig(); err != nil && !configMissing(err) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// the decode hook splits on commas but keeps surrounding spaces
	cfg.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the store connection cannot do without.
func (c *Config) Validate() error {
	if c.DBUser == "" || c.DBName == "" {
		return fmt.Errorf("missing required database configuration: DB_USER and DB_NAME must be set")
	}
	if c.DBSchema == "" {
		return fmt.Errorf("DB_SCHEMA must not be empty")
	}
	switch c.OTelTracesSampler {
	case "always_on", "always_off", "traceidratio":
	default:
		return fmt.Errorf("OTEL_TRACES_SAMPLER must be \"always_on\", \"always_off\" or \"traceidratio\", got %q", c.OTelTracesSampler)
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// DSN renders the lib/pq key/value connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func configMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
