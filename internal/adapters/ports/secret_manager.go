package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (e.g., the gateway shared secret)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManagerAdapter resolves credentials that should not live in plain environment variables.
// Supported backends: local filesystem, AWS Secrets Manager, HashiCorp Vault.
type SecretManagerAdapter interface {
	// GetSecret retrieves a secret by its path/name
	// Path format depends on implementation:
	//   - Local: file path relative to the base directory
	//   - AWS: secret name or ARN, e.g. "globalone/terminals/{terminal_id}/shared-secret"
	//   - Vault: path below the KV mount, e.g. "globalone/terminals/{terminal_id}"
	// Returns error if the secret does not exist, access is denied or the backend is unreachable.
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
