package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/guss-backend/config"
	"github.com/Black-And-White-Club/guss-backend/db/bundb"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load configuration for database connection ONLY
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Postgres.DSN == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	cliApp := &cli.App{
		Name: "bun",
		Commands: []*cli.Command{
			newMultiModuleDBCommand(cfg.Postgres.DSN),
		},
	}

	if err := cliApp.Run(append([]string{os.Args[0]}, flag.Args()...)); err != nil {
		log.Fatal(err)
	}
}

func newMultiModuleDBCommand(dsn string) *cli.Command {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	withDB := func(fn func(c *cli.Context, db *bun.DB) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			db, err := bundb.Open(c.Context, dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			return fn(c, db)
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: withDB(func(c *cli.Context, db *bun.DB) error {
					return migrate.NewMigrator(db, bundb.Modules()[0].Migrations).Init(c.Context)
				}),
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "river", Usage: "also apply the River queue schema", Value: true},
				},
				Action: withDB(func(c *cli.Context, db *bun.DB) error {
					if err := bundb.Migrate(c.Context, db, logger); err != nil {
						return err
					}
					if c.Bool("river") {
						return bundb.MigrateRiver(c.Context, dsn)
					}
					return nil
				}),
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of every module",
				Action: withDB(func(c *cli.Context, db *bun.DB) error {
					return bundb.Rollback(c.Context, db, logger)
				}),
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: withDB(func(c *cli.Context, db *bun.DB) error {
					migrations, err := moduleMigrations(c.Args().First())
					if err != nil {
						return err
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := migrate.NewMigrator(db, migrations).CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", c.Args().First(), mf.Name, mf.Path)
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: withDB(func(c *cli.Context, db *bun.DB) error {
					for _, mod := range bundb.Modules() {
						ms, err := migrate.NewMigrator(db, mod.Migrations).MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", mod.Name)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				}),
			},
		},
	}
}

func moduleMigrations(name string) (*migrate.Migrations, error) {
	for _, mod := range bundb.Modules() {
		if mod.Name == name {
			return mod.Migrations, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %s", name)
}
