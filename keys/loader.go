// Package keys provides key material loading for signing and verification.
//
// This package implements the fingerprint.KeyStore contract for resolving
// PEM-encoded RSA keys from the filesystem.
//
// # Resolution Order
//
// Private keys are only ever loaded from an explicit path. Public keys
// resolve in order:
//
//  1. The path supplied by the caller (--pubKey flag)
//  2. The path named by the configured environment variable
//  3. The bundled default path
//
// # Loading Keys
//
//	store := &keys.FileStore{EnvVar: "WARRANTYSEAL_PUBKEY", DefaultPath: "/etc/warrantyseal/signer.pub"}
//	pub, err := store.PublicKey("")
//	if err != nil {
//		log.Fatal(err)
//	}
package keys

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/warrantyseal/warrantyseal/crypto"
)

// ErrNotFound indicates that no key material could be resolved or read.
var ErrNotFound = errors.New("key material not found")

// Store resolves RSA key material. The production implementation is
// FileStore; tests inject an in-memory fake.
type Store interface {
	PrivateKey(path string) (*rsa.PrivateKey, error)
	PublicKey(path string) (*rsa.PublicKey, error)
}

// FileStore loads PEM keys from the filesystem.
type FileStore struct {
	// EnvVar optionally names an environment variable holding a fallback
	// public key path.
	EnvVar string
	// DefaultPath optionally points at a bundled default public key.
	DefaultPath string
}

// PrivateKey loads an RSA private key from the given PEM file.
func (f *FileStore) PrivateKey(path string) (*rsa.PrivateKey, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no private key path given", ErrNotFound)
	}
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read private key file: %v", ErrNotFound, err)
	}
	return crypto.ParsePrivateKeyPEM(pemBytes)
}

// PublicKey loads an RSA public key, falling back to the environment
// variable and then the bundled default when path is empty.
func (f *FileStore) PublicKey(path string) (*rsa.PublicKey, error) {
	resolved := f.resolvePublicPath(path)
	if resolved == "" {
		return nil, fmt.Errorf("%w: no public key path resolvable", ErrNotFound)
	}
	pemBytes, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read public key file: %v", ErrNotFound, err)
	}
	return crypto.ParsePublicKeyPEM(pemBytes)
}

func (f *FileStore) resolvePublicPath(path string) string {
	if path != "" {
		return path
	}
	if f.EnvVar != "" {
		if p := os.Getenv(f.EnvVar); p != "" {
			return p
		}
	}
	return f.DefaultPath
}
