package secrets

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/abedra/dynamic-secrets-example/config"
)

const (
	// UnauthenticatedMessage is printed when the AppRole login failed.
	UnauthenticatedMessage = "Unable to authenticate to Vault"

	connectedMessage       = "Connected"
	couldNotConnectMessage = "Could not connect"
)

//Run executes the connectivity check end to end: check authentication,
//load the config file, overlay dynamic credentials, attempt one database
//connection. The outcome strings go to out. Only a config load failure
//is returned; everything else is reported here.
func Run(ctx context.Context, client *Client, configPath string, out io.Writer) error {
	if !client.Authenticated() {
		fmt.Fprintln(out, UnauthenticatedMessage)
		return nil
	}

	cnf, err := config.FromFile(configPath)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"host":     cnf.Host,
		"port":     cnf.Port,
		"database": cnf.Database,
	}).Debug("loaded database configuration")

	cnf, enrichment := EnrichConfig(ctx, client.Logical(), cnf)
	if !enrichment.Applied {
		// Deliberate: the check continues with empty credentials and
		// fails downstream exactly like a bad password would.
		log.WithError(enrichment.Err).Warn("dynamic credentials unavailable")
	}

	if err := VerifyConnection(ctx, cnf); err != nil {
		log.WithError(err).Warn("connection check failed")
		fmt.Fprintln(out, couldNotConnectMessage)
		return nil
	}

	fmt.Fprintln(out, connectedMessage)
	return nil
}
