package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int    `yaml:"max_conns"`
}

type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	Topic         string   `yaml:"topic"`
	ClientID      string   `yaml:"client_id"`
	TLS           bool     `yaml:"tls"`
	SASLMechanism string   `yaml:"sasl_mechanism"`
	SASLUsername  string   `yaml:"sasl_username"`
	SASLPassword  string   `yaml:"sasl_password"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type CalculatorConfig struct {
	DayCountConvention string `yaml:"day_count_convention"`
	DefaultCurrency    string `yaml:"default_currency"`
}

type RetentionConfig struct {
	Days int    `yaml:"days"`
	Cron string `yaml:"cron"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	JWTPublicKeyFile string `yaml:"jwt_public_key_file"`
	JWTIssuer        string `yaml:"jwt_issuer"`
}

type TLSConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type TelemetryConfig struct {
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	SampleRatio  float64 `yaml:"sample_ratio"`
}

type Config struct {
	ServiceName    string           `yaml:"service_name"`
	GRPCPort       int              `yaml:"grpc_port"`
	HTTPPort       int              `yaml:"http_port"`
	GRPCReflection bool             `yaml:"grpc_reflection"`
	LogLevel       string           `yaml:"log_level"`
	LogFormat      string           `yaml:"log_format"`
	DB             DatabaseConfig   `yaml:"database"`
	Kafka          KafkaConfig      `yaml:"kafka"`
	Redis          RedisConfig      `yaml:"redis"`
	Calculator     CalculatorConfig `yaml:"calculator"`
	Retention      RetentionConfig  `yaml:"retention"`
	RateLimit      RateLimitConfig  `yaml:"rate_limit"`
	Auth           AuthConfig       `yaml:"auth"`
	TLS            TLSConfig        `yaml:"tls"`
	Telemetry      TelemetryConfig  `yaml:"telemetry"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		ServiceName: "vaddi",
		GRPCPort:    9090,
		HTTPPort:    8080,
		LogLevel:    "info",
		LogFormat:   "json",
		DB: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "vaddi",
			Name:     "vaddi",
			SSLMode:  "require",
			MaxConns: 10,
		},
		Kafka: KafkaConfig{
			Topic:    "vaddi.calculations",
			ClientID: "vaddi",
		},
		Redis: RedisConfig{
			TTL: 24 * time.Hour,
		},
		Calculator: CalculatorConfig{
			DayCountConvention: "calendar",
			DefaultCurrency:    "INR",
		},
		Retention: RetentionConfig{
			Days: 90,
			Cron: "0 3 * * *",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Auth: AuthConfig{
			JWTIssuer: "vaddi",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// VADDI_CONFIG_FILE, then environment variables. A .env file in the working
// directory is loaded first if present; it never overrides variables already
// set in the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	if path := os.Getenv("VADDI_CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)
	c.GRPCPort = getEnvInt("GRPC_PORT", c.GRPCPort)
	c.HTTPPort = getEnvInt("HTTP_PORT", c.HTTPPort)
	c.GRPCReflection = getEnvBool("GRPC_REFLECTION", c.GRPCReflection)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	c.DB.Enabled = getEnvBool("DB_ENABLED", c.DB.Enabled)
	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnvInt("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Name = getEnv("DB_NAME", c.DB.Name)
	c.DB.SSLMode = getEnv("DB_SSLMODE", c.DB.SSLMode)
	c.DB.MaxConns = getEnvInt("DB_MAX_CONNS", c.DB.MaxConns)

	c.Kafka.Brokers = getEnvList("KAFKA_BROKERS", c.Kafka.Brokers)
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)
	c.Kafka.ClientID = getEnv("KAFKA_CLIENT_ID", c.Kafka.ClientID)
	c.Kafka.TLS = getEnvBool("KAFKA_TLS", c.Kafka.TLS)
	c.Kafka.SASLMechanism = getEnv("KAFKA_SASL_MECHANISM", c.Kafka.SASLMechanism)
	c.Kafka.SASLUsername = getEnv("KAFKA_SASL_USERNAME", c.Kafka.SASLUsername)
	c.Kafka.SASLPassword = getEnv("KAFKA_SASL_PASSWORD", c.Kafka.SASLPassword)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
	c.Redis.TTL = getEnvDuration("CACHE_TTL", c.Redis.TTL)

	c.Calculator.DayCountConvention = getEnv("DAY_COUNT_CONVENTION", c.Calculator.DayCountConvention)
	c.Calculator.DefaultCurrency = getEnv("DEFAULT_CURRENCY", c.Calculator.DefaultCurrency)

	c.Retention.Days = getEnvInt("RETENTION_DAYS", c.Retention.Days)
	c.Retention.Cron = getEnv("RETENTION_CRON", c.Retention.Cron)

	c.RateLimit.RequestsPerSecond = getEnvFloat("RATE_LIMIT_RPS", c.RateLimit.RequestsPerSecond)
	c.RateLimit.Burst = getEnvInt("RATE_LIMIT_BURST", c.RateLimit.Burst)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.JWTPublicKeyFile = getEnv("JWT_PUBLIC_KEY_FILE", c.Auth.JWTPublicKeyFile)
	c.Auth.JWTIssuer = getEnv("JWT_ISSUER", c.Auth.JWTIssuer)

	c.TLS.CertFile = getEnv("TLS_CERT_FILE", c.TLS.CertFile)
	c.TLS.KeyFile = getEnv("TLS_KEY_FILE", c.TLS.KeyFile)

	c.Telemetry.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Telemetry.OTLPEndpoint)
	c.Telemetry.SampleRatio = getEnvFloat("OTEL_TRACES_SAMPLER_ARG", c.Telemetry.SampleRatio)
}

// Validate checks settings that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Enabled && c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD is required when DB_ENABLED is set"))
	}
	switch c.Calculator.DayCountConvention {
	case "calendar", "30/360":
	default:
		errs = append(errs, fmt.Errorf("DAY_COUNT_CONVENTION must be calendar or 30/360, got %q", c.Calculator.DayCountConvention))
	}
	if c.Retention.Days < 0 {
		errs = append(errs, errors.New("RETENTION_DAYS must not be negative"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate limit settings must not be negative"))
	}
	if c.RateLimitEnabled() && c.RateLimit.Burst == 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be at least 1 when RATE_LIMIT_RPS is set"))
	}
	return errors.Join(errs...)
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// KafkaEnabled reports whether any broker is configured.
func (c Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// CacheEnabled reports whether a Redis address is configured.
func (c Config) CacheEnabled() bool {
	return c.Redis.Addr != ""
}

// RetentionEnabled reports whether old calculations are purged.
func (c Config) RetentionEnabled() bool {
	return c.Retention.Days > 0 && c.Retention.Cron != ""
}

// RateLimitEnabled reports whether API requests are rate limited. A rate of
// zero disables the limiter.
func (c Config) RateLimitEnabled() bool {
	return c.RateLimit.RequestsPerSecond > 0
}

// TLSEnabled reports whether a certificate pair is configured.
func (c Config) TLSEnabled() bool {
	return c.TLS.CertFile != "" && c.TLS.KeyFile != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
