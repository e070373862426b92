package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	tournamentmigrations "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/tourney-bot/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "bun",
		Usage: "database migrations for tourney-bot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Commands: []*cli.Command{
			newDBCommand(),
			newRiverCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadDSN(c *cli.Context) (string, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.Postgres.DSN, nil
}

// withMigrator opens the database for the duration of one command.
func withMigrator(fn func(c *cli.Context, migrator *migrate.Migrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		dsn, err := loadDSN(c)
		if err != nil {
			return err
		}
		db := bun.NewDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn))), pgdialect.New())
		defer db.Close()
		return fn(c, migrate.NewMigrator(db, tournamentmigrations.Migrations))
	}
}

func newDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "tournament table migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					return migrator.Init(c.Context)
				}),
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					if err := migrator.Lock(c.Context); err != nil {
						return err
					}
					defer migrator.Unlock(c.Context) //nolint:errcheck

					group, err := migrator.Migrate(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Println("No new migrations to run")
						return nil
					}
					fmt.Printf("Migrated to %s\n", group)
					return nil
				}),
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					if err := migrator.Lock(c.Context); err != nil {
						return err
					}
					defer migrator.Unlock(c.Context) //nolint:errcheck

					group, err := migrator.Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Println("No groups to roll back")
						return nil
					}
					fmt.Printf("Rolled back %s\n", group)
					return nil
				}),
			},
			{
				Name:  "create_go",
				Usage: "create Go migration",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					name := strings.Join(c.Args().Slice(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration %s (%s)\n", mf.Name, mf.Path)
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: withMigrator(func(c *cli.Context, migrator *migrate.Migrator) error {
					ms, err := migrator.MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Printf("Migrations: %s\n", ms)
					fmt.Printf("Applied: %s\n", ms.Applied())
					fmt.Printf("Unapplied: %s\n", ms.Unapplied())
					return nil
				}),
			},
		},
	}
}

func riverMigrate(ctx context.Context, dsn string, direction rivermigrate.Direction) (*rivermigrate.MigrateResult, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create River migrator: %w", err)
	}
	opts := &rivermigrate.MigrateOpts{}
	if direction == rivermigrate.DirectionDown {
		// Down without a target would drop every River table.
		opts.MaxSteps = 1
	}
	return migrator.Migrate(ctx, direction, opts)
}

func newRiverCommand() *cli.Command {
	run := func(direction rivermigrate.Direction) cli.ActionFunc {
		return func(c *cli.Context) error {
			dsn, err := loadDSN(c)
			if err != nil {
				return err
			}
			res, err := riverMigrate(c.Context, dsn, direction)
			if err != nil {
				return err
			}
			if len(res.Versions) == 0 {
				fmt.Println("River schema is up to date")
			}
			for _, v := range res.Versions {
				fmt.Printf("River migration %s: version %d (%s)\n", direction, v.Version, v.Duration)
			}
			return nil
		}
	}

	return &cli.Command{
		Name:  "river",
		Usage: "River job queue schema",
		Subcommands: []*cli.Command{
			{Name: "up", Usage: "apply pending River migrations", Action: run(rivermigrate.DirectionUp)},
			{Name: "down", Usage: "roll back one River migration", Action: run(rivermigrate.DirectionDown)},
		},
	}
}
