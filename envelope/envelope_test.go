package envelope

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{"meta":{"app":"warrantyseal","fingerprintId":"f-1","createdAt":"2025-09-18T10:00:00.000Z","installer":"root"},"buyer":{"name":"Jane Doe","purchaseDate":"2025-09-18","warrantyDays":90,"warrantyExpires":"2025-12-17T00:00:00.000Z"},"parts":null,"hardwareSnapshot":{"machineId":"abc","capturedAt":"2025-09-18T10:00:00.000Z"}}`

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		env, err := New("acme-support", json.RawMessage(samplePayload), "c2ln")
		require.NoError(t, err)
		assert.Equal(t, "acme-support", env.Signer)
		assert.Equal(t, "c2ln", env.Signature)
	})

	t.Run("empty signer rejected", func(t *testing.T) {
		_, err := New("", json.RawMessage(samplePayload), "c2ln")
		assert.Error(t, err)
	})
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	env, err := New("acme-support", json.RawMessage(samplePayload), "c2ln")
	require.NoError(t, err)

	data, err := env.Marshal()
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, env.Signer, got.Signer)
	assert.Equal(t, env.Signature, got.Signature)

	p, err := got.DecodePayload()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Buyer.Name)
	assert.Equal(t, 90, p.Buyer.WarrantyDays)
}

func TestUnmarshalToleratesKeyReordering(t *testing.T) {
	doc := `{"signature":"c2ln","payload":{"hardwareSnapshot":{},"parts":null,"buyer":{"name":"Jane"},"meta":{"app":"warrantyseal"}},"signer":"acme"}`

	env, err := Unmarshal([]byte(doc))
	require.NoError(t, err)

	p, err := env.DecodePayload()
	require.NoError(t, err)
	assert.Equal(t, "Jane", p.Buyer.Name)
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not JSON", `{"signer":`},
		{"missing signer", `{"payload":{},"signature":"x"}`},
		{"missing payload", `{"signer":"a","signature":"x"}`},
		{"missing signature", `{"signer":"a","payload":{}}`},
		{"payload not an object", `{"signer":"a","payload":[1,2],"signature":"x"}`},
		{"top level not an object", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestDecodePayloadMalformed(t *testing.T) {
	env := &Envelope{Signer: "a", Payload: json.RawMessage(`{"buyer":42}`), Signature: "x"}
	_, err := env.DecodePayload()
	assert.ErrorIs(t, err, ErrFormat)
}
