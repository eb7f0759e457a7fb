package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/vaddi/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr())
	assert.Equal(t, ":9090", cfg.GRPCAddr())
	assert.Equal(t, "calendar", cfg.Calculator.DayCountConvention)
	assert.Equal(t, "INR", cfg.Calculator.DefaultCurrency)
	assert.Equal(t, 90, cfg.Retention.Days)
	assert.Equal(t, "0 3 * * *", cfg.Retention.Cron)
	assert.False(t, cfg.DB.Enabled)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.CacheEnabled())
	assert.True(t, cfg.RetentionEnabled())
	assert.False(t, cfg.TLSEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "90m")
	t.Setenv("DAY_COUNT_CONVENTION", "30/360")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("GRPC_REFLECTION", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 90*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "30/360", cfg.Calculator.DayCountConvention)
	assert.InDelta(t, 2.5, cfg.RateLimit.RequestsPerSecond, 1e-9)
	assert.True(t, cfg.GRPCReflection)
}

func TestLoad_ZeroRateDisablesLimiter(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "0")
	t.Setenv("RATE_LIMIT_BURST", "0")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.RateLimitEnabled())
	assert.True(t, config.Defaults().RateLimitEnabled())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vaddi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_port: 7070
calculator:
  default_currency: USD
retention:
  days: 30
redis:
  addr: cache:6379
  ttl: 2h
`), 0o600))

	t.Setenv("VADDI_CONFIG_FILE", path)
	t.Setenv("RETENTION_DAYS", "7")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTPPort)
	assert.Equal(t, "USD", cfg.Calculator.DefaultCurrency)
	assert.Equal(t, 7, cfg.Retention.Days)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "0 3 * * *", cfg.Retention.Cron)
}

func TestLoad_MissingYAMLFile(t *testing.T) {
	t.Setenv("VADDI_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"database without password", func(c *config.Config) { c.DB.Enabled = true }, "DB_PASSWORD"},
		{"unknown convention", func(c *config.Config) { c.Calculator.DayCountConvention = "actual/365" }, "DAY_COUNT_CONVENTION"},
		{"negative retention", func(c *config.Config) { c.Retention.Days = -1 }, "RETENTION_DAYS"},
		{"half a tls pair", func(c *config.Config) { c.TLS.CertFile = "cert.pem" }, "TLS_CERT_FILE"},
		{"rate limit without burst", func(c *config.Config) { c.RateLimit.Burst = 0 }, "RATE_LIMIT_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, config.Defaults().Validate())
}
