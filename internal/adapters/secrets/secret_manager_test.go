package secrets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/kevin07696/globalonepay/internal/config"
	"github.com/kevin07696/globalonepay/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeSecret(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLocalSecretManager_GetSecret(t *testing.T) {
	dir := t.TempDir()
	writeSecret(t, dir, "globalone/plain", "x4n35c32RT\n")
	writeSecret(t, dir, "globalone/json", `{"value":"s3cr3t","tags":{"terminal_id":"6491002"},"created_at":"2024-01-02T03:04:05Z"}`)
	writeSecret(t, dir, "globalone/empty", "\n")

	manager := NewLocalSecretManager(dir, zap.NewNop())
	ctx := context.Background()

	t.Run("plain text is trimmed", func(t *testing.T) {
		secret, err := manager.GetSecret(ctx, "globalone/plain")
		require.NoError(t, err)
		assert.Equal(t, "x4n35c32RT", secret.Value)
	})

	t.Run("json carries metadata", func(t *testing.T) {
		secret, err := manager.GetSecret(ctx, "globalone/json")
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", secret.Value)
		assert.Equal(t, "6491002", secret.Metadata["terminal_id"])
		assert.Equal(t, "2024-01-02T03:04:05Z", secret.CreatedAt)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := manager.GetSecret(ctx, "globalone/missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret not found")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := manager.GetSecret(ctx, "globalone/empty")
		assert.Error(t, err)
	})

	t.Run("stays below the base path", func(t *testing.T) {
		writeSecret(t, filepath.Dir(dir), "outside", "leak")
		_, err := manager.GetSecret(ctx, "../outside")
		assert.Error(t, err)
	})
}

type fakeSecretsManager struct {
	output *secretsmanager.GetSecretValueOutput
	err    error
	gotID  string
}

func (f *fakeSecretsManager) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.gotID = aws.ToString(params.SecretId)
	return f.output, f.err
}

func TestAWSSecretsManagerAdapter_GetSecret(t *testing.T) {
	created := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeSecretsManager{
		output: &secretsmanager.GetSecretValueOutput{
			SecretString: aws.String("x4n35c32RT"),
			VersionId:    aws.String("v-123"),
			ARN:          aws.String("arn:aws:secretsmanager:eu-west-1:000000000000:secret:globalone"),
			Name:         aws.String("globalone/terminals/6491002"),
			CreatedDate:  &created,
		},
	}
	adapter := newAWSSecretsManagerAdapter(fake, zap.NewNop())

	secret, err := adapter.GetSecret(context.Background(), "globalone/terminals/6491002")
	require.NoError(t, err)

	assert.Equal(t, "globalone/terminals/6491002", fake.gotID)
	assert.Equal(t, "x4n35c32RT", secret.Value)
	assert.Equal(t, "v-123", secret.Version)
	assert.Equal(t, "2024-03-01T12:00:00Z", secret.CreatedAt)
	assert.Equal(t, "globalone/terminals/6491002", secret.Metadata["name"])
}

func TestAWSSecretsManagerAdapter_Errors(t *testing.T) {
	cause := errors.New("AccessDeniedException")
	adapter := newAWSSecretsManagerAdapter(&fakeSecretsManager{err: cause}, zap.NewNop())

	_, err := adapter.GetSecret(context.Background(), "globalone/terminals/6491002")
	assert.ErrorIs(t, err, cause)

	empty := newAWSSecretsManagerAdapter(&fakeSecretsManager{output: &secretsmanager.GetSecretValueOutput{}}, zap.NewNop())
	_, err = empty.GetSecret(context.Background(), "globalone/terminals/6491002")
	assert.Error(t, err)
}

func TestVaultAdapter_GetSecret(t *testing.T) {
	var gotToken, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Vault-Token")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"data": {"shared_secret": "x4n35c32RT", "terminal_id": "6491002"},
				"metadata": {"version": 3, "created_time": "2024-03-01T12:00:00Z"}
			}
		}`))
	}))
	defer server.Close()

	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "root"
	adapter, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	secret, err := adapter.GetSecret(context.Background(), "globalone/terminals/6491002")
	require.NoError(t, err)

	assert.Equal(t, "root", gotToken)
	assert.Equal(t, "/v1/secret/data/globalone/terminals/6491002", gotPath)
	assert.Equal(t, "x4n35c32RT", secret.Value)
	assert.Equal(t, "3", secret.Version)
	assert.Equal(t, "2024-03-01T12:00:00Z", secret.CreatedAt)
	assert.Equal(t, "6491002", secret.Metadata["terminal_id"])
}

func TestNewVaultAdapter_RequiresToken(t *testing.T) {
	_, err := NewVaultAdapter(context.Background(), DefaultVaultConfig("http://127.0.0.1:8200"), zap.NewNop())
	assert.Error(t, err)
}

func TestResolveSharedSecret(t *testing.T) {
	ctx := context.Background()

	t.Run("env", func(t *testing.T) {
		cfg := &config.Config{
			GlobalOne: config.GlobalOneConfig{SharedSecret: "x4n35c32RT"},
			Secrets:   config.SecretsConfig{Manager: config.SecretManagerEnv},
		}
		secret, err := ResolveSharedSecret(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "x4n35c32RT", secret)
	})

	t.Run("local", func(t *testing.T) {
		dir := t.TempDir()
		writeSecret(t, dir, "globalone/6491002", "from-file\n")

		cfg := &config.Config{
			GlobalOne: config.GlobalOneConfig{SharedSecretPath: "globalone/6491002"},
			Secrets:   config.SecretsConfig{Manager: config.SecretManagerLocal, BasePath: dir},
		}
		secret, err := ResolveSharedSecret(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "from-file", secret)
	})

	t.Run("unsupported", func(t *testing.T) {
		cfg := &config.Config{Secrets: config.SecretsConfig{Manager: "gcp"}}
		_, err := ResolveSharedSecret(ctx, cfg, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestFetchSharedSecret(t *testing.T) {
	ctx := context.Background()
	manager := mocks.NewMockSecretManager(map[string]string{
		"globalone/terminals/6491002": "x4n35c32RT",
		"globalone/terminals/empty":   "",
	})

	secret, err := FetchSharedSecret(ctx, manager, "globalone/terminals/6491002")
	require.NoError(t, err)
	assert.Equal(t, "x4n35c32RT", secret)

	_, err = FetchSharedSecret(ctx, manager, "globalone/terminals/empty")
	assert.Error(t, err)

	_, err = FetchSharedSecret(ctx, manager, "globalone/terminals/unknown")
	assert.Error(t, err)

	manager.Err = errors.New("backend unavailable")
	_, err = FetchSharedSecret(ctx, manager, "globalone/terminals/6491002")
	assert.ErrorIs(t, err, manager.Err)

	assert.Len(t, manager.Paths, 4)
}
