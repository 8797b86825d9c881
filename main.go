package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/guss-backend/app"
	"github.com/Black-And-White-Club/guss-backend/app/observability"
	"github.com/Black-And-White-Club/guss-backend/config"
	"github.com/Black-And-White-Club/guss-backend/db/bundb"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "guss",
		Usage: "tap round backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the round completion queue",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply module and River migrations",
				Action: migrateAll,
			},
			{
				Name:   "seed",
				Usage:  "create the demo accounts when the users table is empty",
				Action: seed,
			},
		},
		DefaultCommand: "serve",
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads the configuration and observability. Migrations only need the
// database, so requireServing is false for them.
func setup(c *cli.Context, requireServing bool) (*config.Config, observability.Observability, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, observability.Observability{}, fmt.Errorf("failed to load config: %w", err)
	}
	if requireServing {
		err = cfg.RequireServing()
	} else if cfg.Postgres.DSN == "" {
		err = errors.New("DATABASE_URL environment variable not set")
	}
	if err != nil {
		return nil, observability.Observability{}, err
	}

	obs := observability.Init(observability.Config{
		Environment:    cfg.Observability.Environment,
		LogLevel:       cfg.Observability.LogLevel,
		MetricsAddress: cfg.Observability.MetricsAddress,
	})
	return cfg, obs, nil
}

func serve(c *cli.Context) error {
	cfg, obs, err := setup(c, true)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, obs)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer application.Close()

	return application.Run(ctx)
}

func migrateAll(c *cli.Context) error {
	cfg, obs, err := setup(c, false)
	if err != nil {
		return err
	}
	logger := obs.Provider.Logger

	db, err := bundb.Open(c.Context, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := bundb.Migrate(c.Context, db, logger); err != nil {
		return err
	}
	if err := bundb.MigrateRiver(c.Context, cfg.Postgres.DSN); err != nil {
		return err
	}
	logger.InfoContext(c.Context, "Migrations complete")
	return nil
}

func seed(c *cli.Context) error {
	cfg, obs, err := setup(c, true)
	if err != nil {
		return err
	}

	ctx := c.Context

	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	application := &app.App{Config: cfg, Observability: obs, DB: db}
	userModule, authModule := application.AccountModules(ctx)

	_, err = app.Seed(ctx, userModule.GetService(), authModule.GetService(), app.SeedUsernames(cfg.Game.ZeroScoreUsername), obs.Provider.Logger)
	return err
}
