// Package config loads the service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds every tunable of the storefront API.
type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string `yaml:"listen_addr"`

	// JWTSecret signs auth tokens. Must be overridden outside development.
	JWTSecret string `yaml:"jwt_secret"`

	// JWTExpiry bounds token lifetime.
	JWTExpiry Duration `yaml:"jwt_expiry"`

	// SettlementDelay is how long after creation an order is confirmed by
	// the payment simulation.
	SettlementDelay Duration `yaml:"settlement_delay"`

	// ShippingFee is the flat shipping cost in BRL.
	ShippingFee string `yaml:"shipping_fee"`

	// FreeShippingOver is the subtotal above which shipping is free.
	FreeShippingOver string `yaml:"free_shipping_over"`

	// RedisAddr enables the Redis cart mirror when non-empty.
	RedisAddr string `yaml:"redis_addr"`

	// OrderLogPath enables the SQLite order transition log when non-empty.
	OrderLogPath string `yaml:"order_log_path"`
}

// Default returns the development configuration.
func Default() Config {
	return Config{
		ListenAddr:       ":8080",
		JWTSecret:        "holy-street-dev-secret",
		JWTExpiry:        Duration(24 * time.Hour),
		SettlementDelay:  Duration(2 * time.Second),
		ShippingFee:      "15.90",
		FreeShippingOver: "200",
	}
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist) and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file; defaults plus env are enough.
		case err != nil:
			return Config{}, fmt.Errorf("config: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
			}
		}
	}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.OrderLogPath = getEnv("ORDER_LOG_PATH", cfg.OrderLogPath)
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse JWT_EXPIRES_IN: %w", err)
		}
		cfg.JWTExpiry = Duration(d)
	}
	if v := os.Getenv("SETTLEMENT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse SETTLEMENT_DELAY: %w", err)
		}
		cfg.SettlementDelay = Duration(d)
	}

	if _, err := decimal.NewFromString(cfg.ShippingFee); err != nil {
		return Config{}, fmt.Errorf("config: shipping_fee: %w", err)
	}
	if _, err := decimal.NewFromString(cfg.FreeShippingOver); err != nil {
		return Config{}, fmt.Errorf("config: free_shipping_over: %w", err)
	}

	return cfg, nil
}

// ShippingFeeDecimal returns the parsed shipping fee. Load validated it.
func (c Config) ShippingFeeDecimal() decimal.Decimal {
	return decimal.RequireFromString(c.ShippingFee)
}

// FreeShippingOverDecimal returns the parsed free-shipping threshold.
func (c Config) FreeShippingOverDecimal() decimal.Decimal {
	return decimal.RequireFromString(c.FreeShippingOver)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
