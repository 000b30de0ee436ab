package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// Addr returns the listen address string.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StorageConfig struct {
	Path string `mapstructure:"path"` // account snapshot file
}

// LedgerConfig holds process-wide ledger policy. The limits apply to every
// account; they are not per-account settings.
type LedgerConfig struct {
	PerTxWithdrawLimit float64 `mapstructure:"per_tx_withdraw_limit"`
	DailyWithdrawLimit float64 `mapstructure:"daily_withdraw_limit"`
	HistoryCap         int     `mapstructure:"history_cap"`      // stored transactions per account
	StatementWindow    int     `mapstructure:"statement_window"` // mini statement size
}

type SessionConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTExpiry time.Duration `mapstructure:"jwt_expiry"`
	JWTIssuer string        `mapstructure:"jwt_issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ALE_ (Account Ledger Engine).
// Nested keys use underscore: ALE_STORAGE_PATH, ALE_SESSION_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.path", "accounts.json")
	v.SetDefault("ledger.per_tx_withdraw_limit", 10000.00)
	v.SetDefault("ledger.daily_withdraw_limit", 20000.00)
	v.SetDefault("ledger.history_cap", 50)
	v.SetDefault("ledger.statement_window", 10)
	v.SetDefault("session.jwt_secret", "")
	v.SetDefault("session.jwt_expiry", "30m")
	v.SetDefault("session.jwt_issuer", "account-ledger")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: ALE_LEDGER_HISTORY_CAP -> ledger.history_cap
	v.SetEnvPrefix("ALE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
