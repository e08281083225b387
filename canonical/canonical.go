// Package canonical produces a deterministic JSON encoding for signing.
//
// Two semantically equal values (same keys and values regardless of the
// order the keys were inserted or appear in source text) always encode to
// identical bytes. Object keys are sorted by byte-wise comparison at every
// nesting level; array element order is semantically significant and is
// preserved; scalars pass through unchanged, with numbers kept as their
// original literal text so a stored document re-parses to the same bytes.
//
// # Usage
//
// Canonicalize a Go value before signing:
//
//	payloadBytes, err := canonical.Marshal(payload)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Re-canonicalize stored JSON text before verifying:
//
//	signedBytes, err := canonical.Transform(rawPayload)
//
// The verifier must never assume the on-disk JSON preserved key order;
// Transform is always reapplied before recomputing the signed digest.
package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Marshal encodes v as canonical JSON bytes.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	return Transform(raw)
}

// Transform re-encodes raw JSON text into canonical form. Numbers are
// preserved as their source literals, so Transform(Transform(x)) == Transform(x).
func Transform(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}

	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return fmt.Errorf("failed to encode key %q: %w", k, err)
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := encode(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		// null, bool, string and json.Number all have a single stable encoding
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("failed to encode scalar: %w", err)
		}
		buf.Write(b)
		return nil
	}
}
