package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Environment string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	HTTPAddr    string `mapstructure:"HTTP_ADDR"`

	StorageDriver     string `mapstructure:"STORAGE_DRIVER"`
	DBDSN             string `mapstructure:"DB_DSN"`
	MigrationsEnabled bool   `mapstructure:"MIGRATIONS_ENABLED"`

	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB          int           `mapstructure:"REDIS_DB"`
	TemplateCacheTTL time.Duration `mapstructure:"TEMPLATE_CACHE_TTL"`

	AMQPURL      string `mapstructure:"AMQP_URL"`
	AMQPExchange string `mapstructure:"AMQP_EXCHANGE"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`

	ShopTimezone         string        `mapstructure:"SHOP_TIMEZONE"`
	AutoCompleteInterval time.Duration `mapstructure:"AUTO_COMPLETE_INTERVAL"`

	RateLimitRPS       float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst     int     `mapstructure:"RATE_LIMIT_BURST"`
	CORSAllowedOrigins string  `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var defaults = map[string]any{
	"ENV":                    "development",
	"LOG_LEVEL":              "info",
	"HTTP_ADDR":              ":8080",
	"STORAGE_DRIVER":         StorageDriverPostgres,
	"DB_DSN":                 "",
	"MIGRATIONS_ENABLED":     true,
	"REDIS_ADDR":             "",
	"REDIS_PASSWORD":         "",
	"REDIS_DB":               0,
	"TEMPLATE_CACHE_TTL":     "10m",
	"AMQP_URL":               "",
	"AMQP_EXCHANGE":          "booking.events",
	"JWT_SECRET":             "",
	"TELEGRAM_TOKEN":         "",
	"SHOP_TIMEZONE":          "UTC",
	"AUTO_COMPLETE_INTERVAL": "15m",
	"RATE_LIMIT_RPS":         10.0,
	"RATE_LIMIT_BURST":       20,
	"CORS_ALLOWED_ORIGINS":   "*",
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля и согласованность настроек
func (c *Config) Validate() error {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))

	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required when STORAGE_DRIVER=%s", StorageDriverPostgres)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.AutoCompleteInterval < 0 {
		return fmt.Errorf("AUTO_COMPLETE_INTERVAL must not be negative")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}

	return nil
}

// Location часовой пояс барбершопов
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ShopTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_TIMEZONE %q: %w", c.ShopTimezone, err)
	}
	return loc, nil
}

// AllowedOrigins список origin для CORS
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
