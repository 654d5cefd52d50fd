// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

// MerchantConfig is the credential bundle owned by one client context.
// Secret signs order documents and verifies callbacks; the admin password
// is hashed once before any status operation uses it.
type MerchantConfig struct {
	WalletID       int64  `yaml:"wallet_id"`
	Secret         string `yaml:"secret"`
	ClientLogin    string `yaml:"client_login"`
	ClientPassword string `yaml:"client_password"`
}

type GatewayConfig struct {
	Environment string        `yaml:"environment"` // sandbox | live
	Timeout     time.Duration `yaml:"timeout"`     // per-exchange HTTP timeout
}

// CallbackConfig configures the notification listener.
type CallbackConfig struct {
	Addr string `yaml:"addr"` // e.g. ":8085"
	Path string `yaml:"path"` // e.g. /cardpay/callback
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type Config struct {
	Merchant MerchantConfig `yaml:"merchant"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Callback CallbackConfig `yaml:"callback"`
	Log      LogConfig      `yaml:"log"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file, applies environment overrides for the
// secrets (CARDPAY_SECRET, CARDPAY_CLIENT_PASSWORD, CARDPAY_WALLET_ID) and
// validates the result.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// env overrides keep secrets out of the file
	if v := os.Getenv("CARDPAY_SECRET"); v != "" {
		cfg.Merchant.Secret = v
	}
	if v := os.Getenv("CARDPAY_CLIENT_PASSWORD"); v != "" {
		cfg.Merchant.ClientPassword = v
	}
	if v := os.Getenv("CARDPAY_WALLET_ID"); v != "" {
		id, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			return nil, fmt.Errorf("CARDPAY_WALLET_ID: %w", perr)
		}
		cfg.Merchant.WalletID = id
	}

	// defaults
	if cfg.Gateway.Environment == "" {
		cfg.Gateway.Environment = "sandbox"
	}
	if cfg.Gateway.Timeout <= 0 {
		cfg.Gateway.Timeout = 15 * time.Second
	}
	if cfg.Callback.Addr == "" {
		cfg.Callback.Addr = ":8085"
	}
	if cfg.Callback.Path == "" {
		cfg.Callback.Path = "/cardpay/callback"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	// Minimal validation
	if cfg.Merchant.WalletID == 0 {
		return nil, errors.New("merchant.wallet_id is required")
	}
	if cfg.Merchant.Secret == "" {
		return nil, errors.New("merchant.secret is required")
	}
	if cfg.Merchant.ClientLogin == "" {
		return nil, errors.New("merchant.client_login is required")
	}
	if cfg.Merchant.ClientPassword == "" {
		return nil, errors.New("merchant.client_password is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
