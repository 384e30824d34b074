package main

import (
	"fmt"

	resultsmigrations "github.com/Black-And-White-Club/wordle-bot/app/modules/results/infrastructure/repositories/migrations"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func (a *application) dbCommand() *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "database migrations and dataset persistence",
		Subcommands: []*cli.Command{
			a.migrateCommand(),
			{
				Name:  "load",
				Usage: "build the dataset and store it as a new ingestion run",
				Flags: buildFlags(),
				Action: func(c *cli.Context) error {
					req, err := a.buildRequest(c)
					if err != nil {
						return err
					}
					db, err := a.database()
					if err != nil {
						return err
					}
					svc, err := a.resultsService(db)
					if err != nil {
						return err
					}
					result, err := svc.BuildDataset(c.Context, req)
					if err != nil {
						return err
					}
					if err := svc.PersistDataset(c.Context, result, req.LogPath); err != nil {
						return err
					}
					printReport(c.App.Writer, result.Report, req)
					fmt.Fprintf(c.App.Writer, "  stored %d rows\n", len(result.Rows))
					return nil
				},
			},
		},
	}
}

func (a *application) migrateCommand() *cli.Command {
	migrator := func() (*migrate.Migrator, error) {
		db, err := a.database()
		if err != nil {
			return nil, err
		}
		return migrate.NewMigrator(db, resultsmigrations.Migrations), nil
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					m, err := migrator()
					if err != nil {
						return err
					}
					return m.Init(c.Context)
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					m, err := migrator()
					if err != nil {
						return err
					}
					if err := m.Lock(c.Context); err != nil {
						return err
					}
					defer m.Unlock(c.Context)

					group, err := m.Migrate(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "No new migrations to run")
					} else {
						fmt.Fprintf(c.App.Writer, "Migrated to %s\n", group)
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					m, err := migrator()
					if err != nil {
						return err
					}
					if err := m.Lock(c.Context); err != nil {
						return err
					}
					defer m.Unlock(c.Context)

					group, err := m.Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.IsZero() {
						fmt.Fprintln(c.App.Writer, "No groups to roll back")
					} else {
						fmt.Fprintf(c.App.Writer, "Rolled back %s\n", group)
					}
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					m, err := migrator()
					if err != nil {
						return err
					}
					ms, err := m.MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "migrations: %s\n", ms)
					fmt.Fprintf(c.App.Writer, "unapplied migrations: %s\n", ms.Unapplied())
					fmt.Fprintf(c.App.Writer, "last migration group: %s\n", ms.LastGroup())
					return nil
				},
			},
		},
	}
}
