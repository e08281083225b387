package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/warrantyseal/warrantyseal/fingerprint"
)

// CreateCommand creates the create command
func CreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Collect this machine's hardware, bind it to warranty metadata and write a signed fingerprint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "buyer",
				Usage:    "Buyer name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "purchase",
				Usage:    "Purchase date (YYYY-MM-DD)",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "warrantyDays",
				Usage: "Warranty length in days",
				Value: 90,
			},
			&cli.StringFlag{
				Name:  "partsFile",
				Usage: "Optional JSON file describing installed parts; unreadable files degrade to null parts",
			},
			&cli.StringFlag{
				Name:     "privKey",
				Usage:    "Path to the PEM-encoded RSA signing key",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Usage:    "Output path for the fingerprint file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "signer",
				Usage: "Signer label recorded in the envelope",
				Value: appName,
			},
		},
		Action: runCreateCommand,
	}
}

func runCreateCommand(ctx context.Context, cmd *cli.Command) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	service := newService(log, cmd.String("signer"))

	env, err := service.Create(ctx, fingerprint.CreateRequest{
		BuyerName:      cmd.String("buyer"),
		PurchaseDate:   cmd.String("purchase"),
		WarrantyDays:   int(cmd.Int("warrantyDays")),
		PartsFile:      cmd.String("partsFile"),
		PrivateKeyPath: cmd.String("privKey"),
		OutputPath:     cmd.String("out"),
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("create failed: %v", err), exitCode(err))
	}

	fmt.Printf("Fingerprint written to %s (signed by %q)\n", cmd.String("out"), env.Signer)
	return nil
}
