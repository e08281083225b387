// Package fingerprint orchestrates the warranty fingerprint lifecycle:
// creating a signed fingerprint, showing a stored one and verifying one
// against the signature and the machine's current hardware.
//
// # Lifecycle
//
// A fingerprint moves through one transition only: create writes a fresh
// envelope (overwriting any prior one at the same path); show and verify
// are read-only. There is no shared state between invocations beyond the
// persisted file.
//
// # Verification
//
// Verify always reports two independent results: whether the stored
// signature matches the re-canonicalized payload, and how the stored
// hardware snapshot compares to a freshly collected one. An invalid
// signature does not suppress the hardware comparison; a caller may want
// both kinds of divergence at once.
package fingerprint

import (
	"errors"

	"github.com/warrantyseal/warrantyseal/compare"
	"github.com/warrantyseal/warrantyseal/envelope"
)

// Sentinel errors surfaced to the invocation boundary.
var (
	// ErrNotFound indicates a missing fingerprint file.
	ErrNotFound = errors.New("fingerprint file not found")
	// ErrValidation indicates an argument that failed validation, such as
	// an unparsable purchase date.
	ErrValidation = errors.New("invalid argument")
)

// Config carries the explicit configuration the orchestrator needs; there
// is no ambient process-wide default state.
type Config struct {
	// AppName is recorded in payload metadata.
	AppName string
	// SignerLabel is the envelope's signer identity.
	SignerLabel string
}

// CreateRequest holds the inputs for producing a fingerprint.
type CreateRequest struct {
	BuyerName      string
	PurchaseDate   string // YYYY-MM-DD
	WarrantyDays   int
	PartsFile      string // optional; unreadable or malformed degrades to null parts
	PrivateKeyPath string
	OutputPath     string
}

// VerifyResult is the combined outcome of signature verification and
// hardware comparison.
type VerifyResult struct {
	SignatureValid bool               `json:"signatureValid"`
	Mismatches     []compare.Mismatch `json:"mismatches"`
	Buyer          envelope.Buyer     `json:"buyer"`
}
