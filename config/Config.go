// Package config loads the database connection settings for the
// connectivity check from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// DatabaseConfig holds everything needed to reach the database. Username
// and Password are never read from the file; they are overlaid later from
// the dynamic credentials issued by Vault.
type DatabaseConfig struct {
	Port       int    `json:"port"`
	Host       string `json:"host"`
	Database   string `json:"database"`
	SecretRole string `json:"secret_role"`
	Username   string `json:"-"`
	Password   string `json:"-"`
}

// configFile is the shape of the file itself. Top-level keys other than
// "database" are ignored.
type configFile struct {
	Database *DatabaseConfig `json:"database"`
}

//FromFile reads the file at path and extracts the database object
func FromFile(path string) (DatabaseConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DatabaseConfig{}, errors.Wrap(err, "config.from_file: read config file")
	}

	cnf, err := Parse(raw)
	if err != nil {
		return DatabaseConfig{}, err
	}

	return cnf, nil
}

//Parse deserializes raw JSON into a DatabaseConfig
func Parse(raw []byte) (DatabaseConfig, error) {
	var file configFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return DatabaseConfig{}, errors.Wrap(err, "config.parse: parse config file")
	}

	if file.Database == nil {
		return DatabaseConfig{}, errors.New(`config.parse: missing "database" object`)
	}

	if err := file.Database.validate(); err != nil {
		return DatabaseConfig{}, err
	}

	return *file.Database, nil
}

func (c *DatabaseConfig) validate() error {
	switch {
	case c.Host == "":
		return errors.New(`config.parse: missing required key "host"`)
	case c.Port == 0:
		return errors.New(`config.parse: missing required key "port"`)
	case c.Database == "":
		return errors.New(`config.parse: missing required key "database"`)
	case c.SecretRole == "":
		return errors.New(`config.parse: missing required key "secret_role"`)
	}

	return nil
}

//ConnectionString renders the libpq key-value form consumed by the driver.
//Credentials are empty until the config has been enriched.
func (c DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database)
}
