// Package secrets resolves database credentials from a Vault secrets
// broker and verifies that the resulting connection parameters work.
package secrets

import (
	"context"
	"os"

	"github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/approle"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// EnvRoleID and EnvSecretID name the AppRole identifiers. Their
	// values are sensitive and must never be logged.
	EnvRoleID   = "APPROLE_ROLE_ID"
	EnvSecretID = "APPROLE_SECRET_ID"

	// DefaultAddress is the fixed broker endpoint, plain HTTP. Setting
	// VAULT_ADDR overrides it.
	DefaultAddress = "http://dynamic-secrets-vault:8200"

	// MissingEnvMessage is printed before the fatal exit when neither
	// identifier is set.
	MissingEnvMessage = "APPROLE_ROLE_ID and APPROLE_SECRET_ID environment variables must be set"
)

// Environment carries the AppRole identifiers. Gathering them into one
// value keeps the process environment out of the pipeline functions.
type Environment struct {
	RoleID   string
	SecretID string
}

//EnvironmentFromOS reads the AppRole identifiers from the process environment
func EnvironmentFromOS() Environment {
	return Environment{
		RoleID:   os.Getenv(EnvRoleID),
		SecretID: os.Getenv(EnvSecretID),
	}
}

// MissingBoth reports whether neither identifier is set. A single
// missing identifier is not a precondition failure: login is still
// attempted and surfaces as the unauthenticated state.
func (e Environment) MissingBoth() bool {
	return e.RoleID == "" && e.SecretID == ""
}

// Client wraps the Vault API client with the outcome of the AppRole
// login. Login failure is not an error here; callers must check
// Authenticated before requesting secrets.
type Client struct {
	api           *api.Client
	authenticated bool
}

//NewClient builds a Vault client and attempts an AppRole login
func NewClient(ctx context.Context, env Environment) (*Client, error) {
	cnf := api.DefaultConfig()
	if os.Getenv(api.EnvVaultAddress) == "" {
		cnf.Address = DefaultAddress
	}

	apiClient, err := api.NewClient(cnf)
	if err != nil {
		return nil, errors.Wrap(err, "secrets.new_client: build vault client")
	}

	client := &Client{api: apiClient}
	if err := client.login(ctx, env); err != nil {
		log.WithError(err).Debug("vault approle login failed")
		return client, nil
	}

	client.authenticated = true
	return client, nil
}

func (c *Client) login(ctx context.Context, env Environment) error {
	appRole, err := approle.NewAppRoleAuth(env.RoleID, &approle.SecretID{FromString: env.SecretID})
	if err != nil {
		return errors.Wrap(err, "secrets.login: build approle auth")
	}

	info, err := c.api.Auth().Login(ctx, appRole)
	if err != nil {
		return errors.Wrap(err, "secrets.login: approle login")
	}
	if info == nil {
		return errors.New("secrets.login: no auth info returned")
	}

	return nil
}

//Authenticated reports whether the AppRole login succeeded
func (c *Client) Authenticated() bool {
	return c.authenticated
}

//Logical exposes the raw read surface used for credential issuance
func (c *Client) Logical() *api.Logical {
	return c.api.Logical()
}
