package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort             = "8080"
	defaultJWTAccessTTL     = "24h"
	defaultPaymentsProvider = "mock"
	defaultMessagingService = "mock"
	defaultWebhookSecret    = "mock-secret"
	defaultDispatchInterval = "30s"
	defaultDispatchBatch    = 25
	defaultSiteURL          = "http://localhost:8080"
)

// Config is read once at startup and passed into constructors explicitly.
// Business logic never reads the environment on its own.
type Config struct {
	Port        string
	DatabaseURL string
	SiteURL     string

	JWTSecret    string
	JWTAccessTTL time.Duration

	PaymentsProvider     string
	PaymentWebhookSecret string

	MessagingProvider string
	CronSecret        string
	DispatchInterval  time.Duration
	DispatchBatchSize int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", defaultPort),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SiteURL:              getEnv("SITE_URL", defaultSiteURL),
		JWTSecret:            strings.TrimSpace(os.Getenv("JWT_SECRET")),
		PaymentsProvider:     strings.ToLower(getEnv("PAYMENTS_PROVIDER", defaultPaymentsProvider)),
		PaymentWebhookSecret: getEnv("PAYMENT_MOCK_WEBHOOK_SECRET", defaultWebhookSecret),
		MessagingProvider:    strings.ToLower(getEnv("MESSAGING_PROVIDER", defaultMessagingService)),
		CronSecret:           strings.TrimSpace(os.Getenv("CRON_SECRET")),
		DispatchBatchSize:    defaultDispatchBatch,
	}

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.DispatchInterval, err = parseDurationEnv("DISPATCH_INTERVAL", defaultDispatchInterval)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.DispatchInterval <= 0 {
		return fmt.Errorf("DISPATCH_INTERVAL must be > 0")
	}
	return nil
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", name, raw)
	}
	return d, nil
}
