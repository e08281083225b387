// Package envelope defines the persisted fingerprint document: the signer
// label, the canonical payload and its base64 signature.
//
// # Document Structure
//
// The on-disk fingerprint is a single JSON object:
//
//	{
//	  "signer": "...",
//	  "payload": { "meta": ..., "buyer": ..., "parts": ..., "hardwareSnapshot": ... },
//	  "signature": "base64..."
//	}
//
// The envelope is written once by create and is read-only afterward.
// Deserialization tolerates any key order inside the payload; the signed
// bytes are always recomputed by re-canonicalizing the stored payload, never
// by trusting the order the parser happened to preserve.
package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/warrantyseal/warrantyseal/hardware"
)

// ErrFormat indicates a document that is not valid fingerprint JSON or is
// missing one of the required top-level fields.
var ErrFormat = errors.New("malformed fingerprint document")

// Envelope is the persisted container. Payload is held as raw JSON so the
// exact stored bytes stay available for re-canonicalization.
type Envelope struct {
	Signer    string          `json:"signer"`
	Payload   json.RawMessage `json:"payload"`
	Signature string          `json:"signature"`
}

// Payload is the signed content of a fingerprint.
type Payload struct {
	Meta             Meta              `json:"meta"`
	Buyer            Buyer             `json:"buyer"`
	Parts            json.RawMessage   `json:"parts"`
	HardwareSnapshot hardware.Snapshot `json:"hardwareSnapshot"`
}

// Meta records how and when the fingerprint was produced.
type Meta struct {
	App           string `json:"app"`
	FingerprintID string `json:"fingerprintId"`
	CreatedAt     string `json:"createdAt"`
	Installer     string `json:"installer"`
}

// Buyer holds the warranty metadata bound to the hardware.
type Buyer struct {
	Name            string `json:"name"`
	PurchaseDate    string `json:"purchaseDate"`
	WarrantyDays    int    `json:"warrantyDays"`
	WarrantyExpires string `json:"warrantyExpires"`
}

// New assembles an envelope. The only validation is a non-empty signer
// label; payload bytes are taken as-is and must already be canonical.
func New(signer string, payload json.RawMessage, signature string) (*Envelope, error) {
	if signer == "" {
		return nil, errors.New("signer label must not be empty")
	}
	return &Envelope{Signer: signer, Payload: payload, Signature: signature}, nil
}

// Marshal renders the envelope as indented JSON for storage. Indentation
// only touches whitespace, which re-canonicalization discards anyway.
func (e *Envelope) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return data, nil
}

// Unmarshal parses a stored fingerprint document. The three top-level
// fields are required; the payload may carry its keys in any order but must
// be object-shaped.
func Unmarshal(data []byte) (*Envelope, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	for _, field := range []string{"signer", "payload", "signature"} {
		if _, ok := doc[field]; !ok {
			return nil, fmt.Errorf("%w: missing required field %q", ErrFormat, field)
		}
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	if trimmed := bytes.TrimSpace(env.Payload); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrFormat)
	}

	return &env, nil
}

// DecodePayload parses the stored payload bytes into their typed form.
func (e *Envelope) DecodePayload() (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return &p, nil
}
