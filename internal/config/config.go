package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Secret sources for the GlobalOne shared secret
const (
	SecretManagerEnv   = "env"
	SecretManagerLocal = "local"
	SecretManagerAWS   = "aws"
	SecretManagerVault = "vault"
)

// Config holds all application configuration
type Config struct {
	GlobalOne GlobalOneConfig
	Secrets   SecretsConfig
	Logger    LoggerConfig
}

// GlobalOneConfig holds GlobalOne terminal configuration
type GlobalOneConfig struct {
	TerminalID       string // Gateway-assigned terminal id
	SharedSecret     string // Used when SECRET_MANAGER=env
	SharedSecretPath string // Secret path/name for local, aws and vault sources
	MerchantCode     string
	URL              string // XML payment endpoint (default: test environment)
	Port             int    // Default 443
	MultiCurrency    bool   // Terminal hashes the currency into payment requests
	Timeout          int    // Request timeout in seconds (default: 30)
}

// SecretsConfig selects and configures the shared-secret source
type SecretsConfig struct {
	Manager        string // env, local, aws or vault (default: env)
	BasePath       string // Local secrets directory
	AWSRegion      string
	AWSEndpoint    string // Optional, e.g. LocalStack
	VaultAddr      string
	VaultToken     string
	VaultMountPath string // KV v2 mount (default: secret)
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		GlobalOne: GlobalOneConfig{
			TerminalID:       getEnv("GLOBALONE_TERMINAL_ID", ""),
			SharedSecret:     getEnv("GLOBALONE_SHARED_SECRET", ""),
			SharedSecretPath: getEnv("GLOBALONE_SHARED_SECRET_PATH", ""),
			MerchantCode:     getEnv("GLOBALONE_MERCHANT_CODE", ""),
			URL:              getEnv("GLOBALONE_URL", "https://testpayments.globalone.me/merchant/xmlpayment"),
			Port:             getEnvAsInt("GLOBALONE_PORT", 443),
			MultiCurrency:    getEnvAsBool("GLOBALONE_MULTI_CURRENCY", false),
			Timeout:          getEnvAsInt("GLOBALONE_TIMEOUT", 30),
		},
		Secrets: SecretsConfig{
			Manager:        getEnv("SECRET_MANAGER", SecretManagerEnv),
			BasePath:       getEnv("SECRET_BASE_PATH", "./secrets"),
			AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
			AWSEndpoint:    getEnv("AWS_ENDPOINT", ""),
			VaultAddr:      getEnv("VAULT_ADDR", "http://127.0.0.1:8200"),
			VaultToken:     getEnv("VAULT_TOKEN", ""),
			VaultMountPath: getEnv("VAULT_MOUNT_PATH", "secret"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields for the selected secret source
func (c *Config) Validate() error {
	if c.GlobalOne.TerminalID == "" {
		return fmt.Errorf("GLOBALONE_TERMINAL_ID is required")
	}
	if c.GlobalOne.Port <= 0 || c.GlobalOne.Port > 65535 {
		return fmt.Errorf("GLOBALONE_PORT out of range: %d", c.GlobalOne.Port)
	}

	switch c.Secrets.Manager {
	case SecretManagerEnv:
		if c.GlobalOne.SharedSecret == "" {
			return fmt.Errorf("GLOBALONE_SHARED_SECRET is required when SECRET_MANAGER=env")
		}
	case SecretManagerLocal, SecretManagerAWS:
		if c.GlobalOne.SharedSecretPath == "" {
			return fmt.Errorf("GLOBALONE_SHARED_SECRET_PATH is required when SECRET_MANAGER=%s", c.Secrets.Manager)
		}
	case SecretManagerVault:
		if c.GlobalOne.SharedSecretPath == "" {
			return fmt.Errorf("GLOBALONE_SHARED_SECRET_PATH is required when SECRET_MANAGER=vault")
		}
		if c.Secrets.VaultToken == "" {
			return fmt.Errorf("VAULT_TOKEN is required when SECRET_MANAGER=vault")
		}
	default:
		return fmt.Errorf("unsupported SECRET_MANAGER %q", c.Secrets.Manager)
	}

	return nil
}

// RequestTimeout returns the HTTP timeout as a duration
func (c *GlobalOneConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
