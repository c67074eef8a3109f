package secrets

import (
	"context"
	"testing"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abedra/dynamic-secrets-example/config"
)

// fakeReader stands in for the broker's read surface.
type fakeReader struct {
	secret *api.Secret
	err    error

	calls int
	path  string
}

func (f *fakeReader) ReadWithContext(_ context.Context, path string) (*api.Secret, error) {
	f.calls++
	f.path = path
	return f.secret, f.err
}

func baseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Port:       5432,
		Host:       "db",
		Database:   "app",
		SecretRole: "app-role",
	}
}

func TestEnrichConfig_Success(t *testing.T) {
	reader := &fakeReader{secret: &api.Secret{
		Data: map[string]interface{}{"username": "u1", "password": "p1"},
	}}

	cnf, outcome := EnrichConfig(context.Background(), reader, baseConfig())

	require.True(t, outcome.Applied)
	require.NoError(t, outcome.Err)
	assert.Equal(t, "database/creds/app-role", reader.path)
	assert.Equal(t, 1, reader.calls)
	assert.Equal(t, "u1", cnf.Username)
	assert.Equal(t, "p1", cnf.Password)
	assert.Equal(t, "host=db port=5432 user=u1 password=p1 dbname=app", cnf.ConnectionString())
}

func TestEnrichConfig_ReadError(t *testing.T) {
	reader := &fakeReader{err: errors.New("connection refused")}

	cnf, outcome := EnrichConfig(context.Background(), reader, baseConfig())

	assert.False(t, outcome.Applied)
	require.Error(t, outcome.Err)
	assert.Equal(t, baseConfig(), cnf)
}

func TestEnrichConfig_NilSecret(t *testing.T) {
	reader := &fakeReader{}

	cnf, outcome := EnrichConfig(context.Background(), reader, baseConfig())

	assert.False(t, outcome.Applied)
	require.Error(t, outcome.Err)
	assert.Equal(t, baseConfig(), cnf)
}

// A response carrying only one of the two fields must not partially
// overwrite the config.
func TestEnrichConfig_MissingPassword(t *testing.T) {
	reader := &fakeReader{secret: &api.Secret{
		Data: map[string]interface{}{"username": "u1"},
	}}

	cnf, outcome := EnrichConfig(context.Background(), reader, baseConfig())

	assert.False(t, outcome.Applied)
	require.Error(t, outcome.Err)
	assert.Empty(t, cnf.Username)
	assert.Empty(t, cnf.Password)
}

func TestEnrichConfig_NonStringValues(t *testing.T) {
	reader := &fakeReader{secret: &api.Secret{
		Data: map[string]interface{}{"username": 42, "password": "p1"},
	}}

	cnf, outcome := EnrichConfig(context.Background(), reader, baseConfig())

	assert.False(t, outcome.Applied)
	assert.Equal(t, baseConfig(), cnf)
}
