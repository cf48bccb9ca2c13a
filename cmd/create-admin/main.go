// Command create-admin registers a login user directly in MongoDB, for
// bootstrapping a deployment that has no admin yet.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/teamsite/teamsite/internal/config"
	"github.com/teamsite/teamsite/internal/database"
	"github.com/teamsite/teamsite/internal/passwords"
	"github.com/teamsite/teamsite/internal/users"
	"github.com/teamsite/teamsite/pkg/logger"
)

func main() {
	name := pflag.StringP("name", "n", "", "display name")
	email := pflag.StringP("email", "e", "", "login email")
	password := pflag.StringP("password", "p", "", "password (or set ADMIN_PASSWORD)")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: create-admin --name NAME --email EMAIL [--password PASSWORD]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))

	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGO_CONNECTION_STRING is required")
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := users.NewMongoUserRepository(client.Database(cfg.MongoDB.Database).Collection(database.UsersCollection))
	svc := users.NewService(repo, passwords.NewHasher(cfg.Hashing.Cost, 1))

	u, err := svc.Register(ctx, *name, *email, *password)
	switch {
	case errors.Is(err, users.ErrMissingFields):
		pflag.Usage()
		os.Exit(2)
	case errors.Is(err, users.ErrEmailTaken):
		logger.Fatalf("a user with email %s already exists", *email)
	case err != nil:
		logger.Fatalf("create user: %v", err)
	}
	logger.Infof("created user %s (%s)", u.ID, u.Email)
}
