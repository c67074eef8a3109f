package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	secrets "github.com/abedra/dynamic-secrets-example"
)

const configPath = "config.json"

func main() {
	env := secrets.EnvironmentFromOS()
	if env.MissingBoth() {
		fmt.Println(secrets.MissingEnvMessage)
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := secrets.NewClient(ctx, env)
	if err != nil {
		log.WithError(err).Error("could not build vault client")
		return
	}

	if err := secrets.Run(ctx, client, configPath, os.Stdout); err != nil {
		fmt.Println(err)
	}
}
