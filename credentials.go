package secrets

import (
	"context"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"

	"github.com/abedra/dynamic-secrets-example/config"
)

// credsPathPrefix is where the database secrets engine is mounted.
const credsPathPrefix = "database/creds/"

// secretReader is the one read the broker is asked for. *api.Logical
// satisfies it; tests substitute fakes.
type secretReader interface {
	ReadWithContext(ctx context.Context, path string) (*api.Secret, error)
}

// Enrichment records whether dynamic credentials were overlaid onto the
// config. The pipeline proceeds either way; Err exists so the failure is
// visible instead of swallowed invisibly.
type Enrichment struct {
	Applied bool
	Err     error
}

//EnrichConfig requests dynamic credentials for the config's secret role
//and overlays username and password onto a copy of cnf. On any failure
//the config comes back unchanged, credentials still empty.
func EnrichConfig(ctx context.Context, reader secretReader, cnf config.DatabaseConfig) (config.DatabaseConfig, Enrichment) {
	secret, err := reader.ReadWithContext(ctx, credsPathPrefix+cnf.SecretRole)
	if err != nil {
		return cnf, Enrichment{Err: errors.Wrap(err, "secrets.enrich_config: generate credentials")}
	}
	if secret == nil || secret.Data == nil {
		return cnf, Enrichment{Err: errors.New("secrets.enrich_config: empty credential response")}
	}

	username, ok := secret.Data["username"].(string)
	if !ok {
		return cnf, Enrichment{Err: errors.New("secrets.enrich_config: response missing username")}
	}
	password, ok := secret.Data["password"].(string)
	if !ok {
		return cnf, Enrichment{Err: errors.New("secrets.enrich_config: response missing password")}
	}

	cnf.Username = username
	cnf.Password = password
	return cnf, Enrichment{Applied: true}
}
