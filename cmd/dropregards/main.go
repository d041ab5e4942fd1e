package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "1.0.0"

func main() {
	app := &cli.App{
		Name:    "dropregards",
		Usage:   "wallet authenticated regards backed by Solana transfers",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.json",
				Usage:   "path to config file",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
