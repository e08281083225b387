package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/warrantyseal/warrantyseal/fingerprint"
)

// ShowCommand creates the show command
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print a stored fingerprint without any cryptographic check",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "path",
				Usage:    "Path to the fingerprint file",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the raw fingerprint document instead of a summary",
			},
		},
		Action: runShowCommand,
	}
}

func runShowCommand(ctx context.Context, cmd *cli.Command) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	service := newService(log, appName)

	env, err := service.Show(cmd.String("path"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("show failed: %v", err), exitCode(err))
	}

	if cmd.Bool("json") {
		data, err := env.Marshal()
		if err != nil {
			return cli.Exit(fmt.Sprintf("show failed: %v", err), 1)
		}
		fmt.Println(string(data))
		return nil
	}

	payload, err := env.DecodePayload()
	if err != nil {
		return cli.Exit(fmt.Sprintf("show failed: %v", err), exitCode(err))
	}

	fmt.Print(fingerprint.NewFormatter().FormatEnvelope(env, payload))
	return nil
}
