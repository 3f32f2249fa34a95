package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.True(t, cfg.MigrationsEnabled)
	assert.Equal(t, 15*time.Minute, cfg.AutoCompleteInterval)
	assert.Equal(t, 10*time.Minute, cfg.TemplateCacheTTL)
	assert.Equal(t, "booking.events", cfg.AMQPExchange)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://localhost/barber")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SHOP_TIMEZONE", "Europe/Moscow")
	t.Setenv("AUTO_COMPLETE_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, time.Minute, cfg.AutoCompleteInterval)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{StorageDriver: StorageDriverMemory, JWTSecret: "secret", ShopTimezone: "UTC"}
	}

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"postgres without dsn", func(c *Config) { c.StorageDriver = StorageDriverPostgres }},
		{"unknown driver", func(c *Config) { c.StorageDriver = "sqlite" }},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }},
		{"bad timezone", func(c *Config) { c.ShopTimezone = "Mars/Olympus" }},
		{"negative interval", func(c *Config) { c.AutoCompleteInterval = -time.Second }},
		{"negative burst", func(c *Config) { c.RateLimitBurst = -1 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
