package secrets

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/abedra/dynamic-secrets-example/config"
)

// sqlOpen is a seam over sql.Open so tests can substitute a stub driver
// for lib/pq.
var sqlOpen = sql.Open

//VerifyConnection opens a single postgres connection from the config and
//pings it. The connection is closed before returning; no query runs.
func VerifyConnection(ctx context.Context, cnf config.DatabaseConfig) error {
	db, err := sqlOpen("postgres", cnf.ConnectionString())
	if err != nil {
		return errors.Wrap(err, "secrets.verify_connection: open connection")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "secrets.verify_connection: connection did not respond")
	}

	return nil
}
