package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/warrantyseal/warrantyseal/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "warrantyseal",
		Usage: "Signed hardware warranty fingerprints",
		Commands: []*cli.Command{
			cmd.CreateCommand(),
			cmd.ShowCommand(),
			cmd.VerifyCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
