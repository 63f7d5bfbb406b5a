package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит полную конфигурацию сервиса.
// Значения задаются флагами командной строки, переменные окружения имеют приоритет.
type Config struct {
	ServerAddress NetworkAddress `env:"SERVER_ADDRESS"`
	BaseURL       URLPrefix      `env:"BASE_URL"`
	DatabaseDSN   string         `env:"DATABASE_DSN"`
	RedisAddr     string         `env:"REDIS_ADDR"`
	JWTSecret     string         `env:"JWT_SECRET" envDefault:"shortlink-dev-secret"`

	Link      LinkConfig      `envPrefix:"LINK_"`
	Connector ConnectorConfig `envPrefix:"DB_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

// LinkConfig задаёт политику валидации и генерации коротких кодов
type LinkConfig struct {
	CodeLength    int           `env:"CODE_LENGTH" envDefault:"10"`
	MaxURLLength  int           `env:"MAX_URL_LENGTH" envDefault:"2048"`
	MaxExpiryDays int           `env:"MAX_EXPIRY_DAYS" envDefault:"365"`
	AllocAttempts int           `env:"ALLOC_ATTEMPTS" envDefault:"5"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	PurgeInterval time.Duration `env:"PURGE_INTERVAL" envDefault:"1h"`
}

// ConnectorConfig задаёт параметры подключения к хранилищу и политику ретраев
type ConnectorConfig struct {
	MaxRetries        int           `env:"MAX_RETRIES" envDefault:"5"`
	RetryBaseDelay    time.Duration `env:"RETRY_BASE_DELAY" envDefault:"5s"`
	RetryMaxDelay     time.Duration `env:"RETRY_MAX_DELAY" envDefault:"30s"`
	HealthCheckPeriod time.Duration `env:"HEALTH_CHECK_PERIOD" envDefault:"1m"`
	ConnectTimeout    time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}

// RateLimitConfig задаёт окно и лимит запросов на один ключ
type RateLimitConfig struct {
	Window time.Duration `env:"WINDOW" envDefault:"15m"`
	Max    int           `env:"MAX" envDefault:"100"`
}

// NewDefaultConfig возвращает конфигурацию со значениями по умолчанию
func NewDefaultConfig() *Config {
	return &Config{
		ServerAddress: NetworkAddress{Host: "localhost", Port: 8080},
		BaseURL:       URLPrefix("http://localhost:8080"),
		JWTSecret:     "shortlink-dev-secret",
		Link: LinkConfig{
			CodeLength:    10,
			MaxURLLength:  2048,
			MaxExpiryDays: 365,
			AllocAttempts: 5,
			StoreTimeout:  5 * time.Second,
			PurgeInterval: time.Hour,
		},
		Connector: ConnectorConfig{
			MaxRetries:        5,
			RetryBaseDelay:    5 * time.Second,
			RetryMaxDelay:     30 * time.Second,
			HealthCheckPeriod: time.Minute,
			ConnectTimeout:    10 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Window: 15 * time.Minute,
			Max:    100,
		},
	}
}

// Load разбирает флаги командной строки и переменные окружения
func Load() (*Config, error) {
	cfg := NewDefaultConfig()

	flag.Var(&cfg.ServerAddress, "a", "address to run HTTP server")
	flag.Var(&cfg.BaseURL, "b", "base URL for shortened links")
	flag.StringVar(&cfg.DatabaseDSN, "d", "", "database DSN")
	flag.StringVar(&cfg.RedisAddr, "r", "", "redis address for rate limiting")
	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}
