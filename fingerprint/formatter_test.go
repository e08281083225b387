package fingerprint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warrantyseal/warrantyseal/compare"
	"github.com/warrantyseal/warrantyseal/envelope"
	"github.com/warrantyseal/warrantyseal/hardware"
)

func TestFormatEnvelope(t *testing.T) {
	f := NewFormatter()
	payload := &envelope.Payload{
		Meta: envelope.Meta{
			App:           "warrantyseal",
			FingerprintID: "fp-0001",
			CreatedAt:     "2025-09-18T10:00:00.000Z",
			Installer:     "operator",
		},
		Buyer: envelope.Buyer{
			Name:            "Jane Doe",
			PurchaseDate:    "2025-09-18",
			WarrantyDays:    90,
			WarrantyExpires: "2025-12-17T00:00:00.000Z",
		},
		Parts: json.RawMessage(`[{"part":"ssd"}]`),
		HardwareSnapshot: hardware.Snapshot{
			MachineID:  hardware.String("machine-1"),
			CPU:        &hardware.CPU{Brand: hardware.String("Intel i7")},
			MemoryGB:   hardware.Uint64(16),
			CapturedAt: "2025-09-18T10:00:00.000Z",
		},
	}
	env := &envelope.Envelope{Signer: "acme-support"}

	out := f.FormatEnvelope(env, payload)
	assert.Contains(t, out, `Fingerprint signed by "acme-support"`)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "warranty 90 days")
	assert.Contains(t, out, "expires 2025-12-17T00:00:00.000Z")
	assert.Contains(t, out, "machine-1")
	assert.Contains(t, out, "Intel i7")
	assert.Contains(t, out, "16 GB")
	assert.Contains(t, out, "parts data")
}

func TestFormatEnvelopeUnknownFields(t *testing.T) {
	f := NewFormatter()
	payload := &envelope.Payload{
		Buyer: envelope.Buyer{Name: "Jane Doe"},
	}
	env := &envelope.Envelope{Signer: "acme-support"}

	out := f.FormatEnvelope(env, payload)
	assert.Contains(t, out, "(unknown)")
	assert.NotContains(t, out, "parts data")
}

func TestFormatVerifyResult(t *testing.T) {
	f := NewFormatter()
	buyer := envelope.Buyer{
		Name:            "Jane Doe",
		PurchaseDate:    "2025-09-18",
		WarrantyDays:    90,
		WarrantyExpires: "2025-12-17T00:00:00.000Z",
	}

	t.Run("all good", func(t *testing.T) {
		out := f.FormatVerifyResult(&VerifyResult{
			SignatureValid: true,
			Mismatches:     []compare.Mismatch{},
			Buyer:          buyer,
		})
		assert.Contains(t, out, "Signature: VALID")
		assert.Contains(t, out, "matches the saved snapshot")
		assert.Contains(t, out, "Jane Doe")
	})

	t.Run("invalid with mismatches", func(t *testing.T) {
		out := f.FormatVerifyResult(&VerifyResult{
			SignatureValid: false,
			Mismatches: []compare.Mismatch{
				{Field: "bios.serial", Saved: "A", Current: "B"},
			},
			Buyer: buyer,
		})
		assert.Contains(t, out, "Signature: INVALID")
		assert.Contains(t, out, "1 mismatch(es)")
		assert.Contains(t, out, "bios.serial: saved=A current=B")
	})
}

func TestVerifyResultJSONShape(t *testing.T) {
	res := &VerifyResult{
		SignatureValid: true,
		Mismatches:     []compare.Mismatch{},
		Buyer:          envelope.Buyer{Name: "Jane Doe"},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, true, doc["signatureValid"])
	assert.Equal(t, []any{}, doc["mismatches"])
}
