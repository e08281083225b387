package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/warrantyseal/warrantyseal/fingerprint"
)

// VerifyCommand creates the verify command
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check a stored fingerprint's signature and compare its snapshot against current hardware",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "path",
				Usage:    "Path to the fingerprint file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "pubKey",
				Usage: "Path to the PEM-encoded verification key (falls back to $" + publicKeyEnvVar + ", then the bundled default)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print a machine-readable result instead of a summary",
			},
		},
		Action: runVerifyCommand,
	}
}

func runVerifyCommand(ctx context.Context, cmd *cli.Command) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	service := newService(log, appName)

	result, err := service.Verify(ctx, cmd.String("path"), cmd.String("pubKey"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("verify failed: %v", err), exitCode(err))
	}

	if cmd.Bool("json") {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return cli.Exit(fmt.Sprintf("verify failed: %v", err), 1)
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(fingerprint.NewFormatter().FormatVerifyResult(result))
	}

	// The report above is the outcome; the exit code still signals the
	// failed signature to scripted callers.
	if !result.SignatureValid {
		return cli.Exit("signature verification failed", 2)
	}
	return nil
}
