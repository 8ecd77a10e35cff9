package secrets

import (
	"context"
	"fmt"

	"github.com/kevin07696/globalonepay/internal/adapters/ports"
	"github.com/kevin07696/globalonepay/internal/config"
	"go.uber.org/zap"
)

// NewSecretManager builds the secret backend selected by cfg.Manager.
// "env" has no backend and returns nil.
func NewSecretManager(ctx context.Context, cfg config.SecretsConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	switch cfg.Manager {
	case config.SecretManagerEnv:
		return nil, nil
	case config.SecretManagerLocal:
		logger.Warn("Using local filesystem secret manager - NOT for production use!",
			zap.String("base_path", cfg.BasePath),
		)
		return NewLocalSecretManager(cfg.BasePath, logger), nil
	case config.SecretManagerAWS:
		return NewAWSSecretsManagerAdapter(ctx, &AWSSecretsManagerConfig{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.AWSEndpoint,
		}, logger)
	case config.SecretManagerVault:
		vaultCfg := DefaultVaultConfig(cfg.VaultAddr)
		vaultCfg.Token = cfg.VaultToken
		if cfg.VaultMountPath != "" {
			vaultCfg.MountPath = cfg.VaultMountPath
		}
		return NewVaultAdapter(ctx, vaultCfg, logger)
	default:
		return nil, fmt.Errorf("unsupported secret manager: %s", cfg.Manager)
	}
}

// ResolveSharedSecret returns the GlobalOne shared secret from the configured source
func ResolveSharedSecret(ctx context.Context, cfg *config.Config, logger *zap.Logger) (string, error) {
	manager, err := NewSecretManager(ctx, cfg.Secrets, logger)
	if err != nil {
		return "", fmt.Errorf("failed to initialize secret manager: %w", err)
	}
	if manager == nil {
		if cfg.GlobalOne.SharedSecret == "" {
			return "", fmt.Errorf("shared secret is not set")
		}
		return cfg.GlobalOne.SharedSecret, nil
	}
	return FetchSharedSecret(ctx, manager, cfg.GlobalOne.SharedSecretPath)
}

// FetchSharedSecret reads the shared secret stored at path
func FetchSharedSecret(ctx context.Context, manager ports.SecretManagerAdapter, path string) (string, error) {
	secret, err := manager.GetSecret(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to fetch shared secret: %w", err)
	}
	if secret.Value == "" {
		return "", fmt.Errorf("shared secret at %s is empty", path)
	}
	return secret.Value, nil
}
