// Package crypto provides cryptographic operations for signing and verification.
//
// This package provides:
//   - RSA PKCS#1 v1.5 signing and verification over SHA256 digests
//   - PEM parsing for RSA private keys (PKCS#1 and PKCS#8 forms)
//   - PEM parsing for RSA public keys (PKIX and PKCS#1 forms)
//   - Base64 signature encoding for storage
//
// # Signing
//
// Sign canonical payload bytes with an RSA private key:
//
//	signatureB64, err := crypto.Sign(privateKey, payloadBytes)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Verification
//
// Verify a stored base64 signature:
//
//	valid, err := crypto.Verify(publicKey, payloadBytes, signatureB64)
//
// A structurally valid but non-matching signature yields (false, nil);
// only malformed inputs produce an error.
package crypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
)

// Sentinel errors distinguishing key, signature and encoding failures.
var (
	// ErrKey indicates key material that is missing or cannot be parsed.
	ErrKey = errors.New("invalid key material")
	// ErrSignature indicates an unexpected failure inside the signing provider.
	ErrSignature = errors.New("signing operation failed")
	// ErrFormat indicates a malformed base64 signature encoding.
	ErrFormat = errors.New("malformed signature encoding")
)

// Sign signs data with an RSA private key using SHA256 and returns the
// signature as standard base64 text.
func Sign(privateKey *rsa.PrivateKey, data []byte) (string, error) {
	if privateKey == nil {
		return "", fmt.Errorf("%w: private key is nil", ErrKey)
	}

	hash := sha256.Sum256(data)

	sig, err := rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.SHA256, hash[:])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSignature, err)
	}

	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify checks a base64-encoded RSA signature against data. It returns
// false with a nil error when the signature is well formed but does not
// match; an error is returned only for missing keys or undecodable base64.
func Verify(publicKey *rsa.PublicKey, data []byte, signatureB64 string) (bool, error) {
	if publicKey == nil {
		return false, fmt.Errorf("%w: public key is nil", ErrKey)
	}

	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	hash := sha256.Sum256(data)

	if err := rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, hash[:], sig); err != nil {
		return false, nil
	}
	return true, nil
}

// ParsePrivateKeyPEM parses an RSA private key from PEM text. Both PKCS#1
// ("RSA PRIVATE KEY") and PKCS#8 ("PRIVATE KEY") encodings are accepted.
func ParsePrivateKeyPEM(pemBytes []byte) (*rsa.PrivateKey, error) {
	blk, _ := pem.Decode(pemBytes)
	if blk == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrKey)
	}

	if key, err := x509.ParsePKCS1PrivateKey(blk.Bytes); err == nil {
		return key, nil
	}

	keyAny, err := x509.ParsePKCS8PrivateKey(blk.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse private key: %v", ErrKey, err)
	}
	key, ok := keyAny.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: private key is not RSA", ErrKey)
	}
	return key, nil
}

// ParsePublicKeyPEM parses an RSA public key from PEM text. Both PKIX
// ("PUBLIC KEY") and PKCS#1 ("RSA PUBLIC KEY") encodings are accepted.
func ParsePublicKeyPEM(pemBytes []byte) (*rsa.PublicKey, error) {
	blk, _ := pem.Decode(pemBytes)
	if blk == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrKey)
	}

	if key, err := x509.ParsePKCS1PublicKey(blk.Bytes); err == nil {
		return key, nil
	}

	keyAny, err := x509.ParsePKIXPublicKey(blk.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse public key: %v", ErrKey, err)
	}
	key, ok := keyAny.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: public key is not RSA", ErrKey)
	}
	return key, nil
}

// MarshalPrivateKeyPEM encodes an RSA private key as PKCS#8 PEM text.
func MarshalPrivateKeyPEM(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// MarshalPublicKeyPEM encodes an RSA public key as PKIX PEM text.
func MarshalPublicKeyPEM(key *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}
