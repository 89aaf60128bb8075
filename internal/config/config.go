package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Tablero"`
		Port      int    `envconfig:"PORT" default:"8080"`
		Env       string `envconfig:"APP_ENV" default:"development"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"tablero"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Redis struct {
		// Empty disables the summary cache.
		Addr string        `envconfig:"REDIS_ADDR"`
		TTL  time.Duration `envconfig:"SUMMARY_CACHE_TTL" default:"10m"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
		RateLimit   int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
	}

	Session struct {
		Secret string `envconfig:"SESSION_SECRET"`
	}

	Exchange struct {
		URL      string        `envconfig:"EXCHANGE_URL"` // empty uses exchange.DefaultURL
		Timeout  time.Duration `envconfig:"EXCHANGE_TIMEOUT" default:"10s"`
		Schedule string        `envconfig:"RATE_SYNC_SCHEDULE" default:"0 10 * * 1-5"`
	}

	Balance struct {
		URL      string        `envconfig:"BALANCE_SYNC_URL"`
		Token    string        `envconfig:"BALANCE_SYNC_TOKEN"`
		Timeout  time.Duration `envconfig:"BALANCE_SYNC_TIMEOUT" default:"60s"`
		Schedule string        `envconfig:"BALANCE_SYNC_SCHEDULE"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.IsProduction() && cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required in production")
	}

	return &cfg, nil
}
