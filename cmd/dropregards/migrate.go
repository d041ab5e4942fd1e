package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/layer-3/dropregards/adapters/postgres"
	"github.com/layer-3/dropregards/internal/config"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create the database schema",
		Action: func(c *cli.Context) error {
			options, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			db, err := postgres.Open(c.Context, options.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(c.Context, db); err != nil {
				return err
			}

			fmt.Println("schema is up to date")
			return nil
		},
	}
}
