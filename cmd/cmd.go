// Package cmd defines the warrantyseal CLI commands.
//
// Exit codes: 0 on success, 1 for not-found, invalid-argument and generic
// failures, 2 for signature-invalid results and missing or unparsable key
// material.
package cmd

import (
	"errors"

	"go.uber.org/zap"

	"github.com/warrantyseal/warrantyseal/crypto"
	"github.com/warrantyseal/warrantyseal/fingerprint"
	"github.com/warrantyseal/warrantyseal/hardware"
	"github.com/warrantyseal/warrantyseal/keys"
)

const (
	appName = "warrantyseal"

	// defaultPublicKeyPath is the bundled verification key installed by the
	// OEM package.
	defaultPublicKeyPath = "/etc/warrantyseal/signer.pub"
	// publicKeyEnvVar optionally overrides the default public key path.
	publicKeyEnvVar = "WARRANTYSEAL_PUBKEY"
)

// newLogger builds the stderr console logger used for degraded-field and
// parts-file warnings.
func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// newService wires the production hardware collector and key store into
// the lifecycle orchestrator.
func newService(log *zap.Logger, signer string) *fingerprint.Service {
	return fingerprint.NewService(
		fingerprint.Config{AppName: appName, SignerLabel: signer},
		hardware.NewCollector(log, appName),
		&keys.FileStore{EnvVar: publicKeyEnvVar, DefaultPath: defaultPublicKeyPath},
		log,
	)
}

// exitCode maps an operation error onto the CLI exit code contract.
func exitCode(err error) int {
	switch {
	case errors.Is(err, keys.ErrNotFound),
		errors.Is(err, crypto.ErrKey),
		errors.Is(err, crypto.ErrSignature):
		return 2
	default:
		return 1
	}
}
