package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kevin07696/globalonepay/internal/adapters/ports"
)

// MockSecretManager is an in-memory SecretManagerAdapter for tests
type MockSecretManager struct {
	mu      sync.Mutex
	secrets map[string]string
	Err     error    // Returned by every GetSecret when set
	Paths   []string // Requested paths, in call order
}

// NewMockSecretManager creates a mock holding the given path to value pairs
func NewMockSecretManager(secrets map[string]string) *MockSecretManager {
	if secrets == nil {
		secrets = make(map[string]string)
	}
	return &MockSecretManager{secrets: secrets}
}

// GetSecret returns the stored value or a not found error
func (m *MockSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Paths = append(m.Paths, path)
	if m.Err != nil {
		return nil, m.Err
	}
	value, ok := m.secrets[path]
	if !ok {
		return nil, fmt.Errorf("secret not found: %s", path)
	}
	return &ports.Secret{Value: value, Version: "mock"}, nil
}
