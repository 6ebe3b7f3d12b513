// Package config содержит логику чтения конфигурации магазина.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации магазина.
// Пустой DatabaseURI означает хранение данных в памяти процесса.
type Config struct {
	RunAddress  string `env:"RUN_ADDRESS"`
	DatabaseURI string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	AuthCookieName string        `env:"AUTH_COOKIE_NAME"`
	AuthCookieTTL  time.Duration `env:"AUTH_COOKIE_TTL"`
}

const (
	defaultRunAddress     = "localhost:8080"
	defaultAuthCookieName = "customer_token"
	defaultAuthCookieTTL  = 30 * 24 * time.Hour
)

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envAuthSecret := cfg.AuthSecret
	envAuthCookieName := cfg.AuthCookieName
	envAuthCookieTTL := cfg.AuthCookieTTL

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.AuthSecret, "s", "", "secret key for customer cookies")
	flag.StringVar(&cfg.AuthCookieName, "cookie-name", defaultAuthCookieName, "name of the customer cookie")
	flag.DurationVar(&cfg.AuthCookieTTL, "cookie-ttl", defaultAuthCookieTTL, "lifetime of the customer cookie")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envAuthSecret != "" {
		cfg.AuthSecret = envAuthSecret
	}
	if envAuthCookieName != "" {
		cfg.AuthCookieName = envAuthCookieName
	}
	if envAuthCookieTTL != 0 {
		cfg.AuthCookieTTL = envAuthCookieTTL
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.AuthCookieName == "" {
		cfg.AuthCookieName = defaultAuthCookieName
	}
	if cfg.AuthCookieTTL <= 0 {
		return nil, fmt.Errorf("invalid cookie ttl %s", cfg.AuthCookieTTL)
	}

	return cfg, nil
}
