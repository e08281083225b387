package fingerprint

import (
	"fmt"
	"strings"

	"github.com/warrantyseal/warrantyseal/envelope"
)

// Formatter renders envelopes and verification results for human-readable
// output. Machine-readable output is plain JSON of the same structures.
type Formatter struct{}

// NewFormatter creates a new formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatEnvelope renders a stored fingerprint summary for the show command.
func (f *Formatter) FormatEnvelope(env *envelope.Envelope, payload *envelope.Payload) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Fingerprint signed by %q\n", env.Signer)
	fmt.Fprintf(&sb, "  Created:  %s by %s (%s)\n",
		payload.Meta.CreatedAt, payload.Meta.Installer, payload.Meta.App)
	if payload.Meta.FingerprintID != "" {
		fmt.Fprintf(&sb, "  ID:       %s\n", payload.Meta.FingerprintID)
	}
	fmt.Fprintf(&sb, "  Buyer:    %s\n", payload.Buyer.Name)
	fmt.Fprintf(&sb, "  Purchase: %s, warranty %d days, expires %s\n",
		payload.Buyer.PurchaseDate, payload.Buyer.WarrantyDays, payload.Buyer.WarrantyExpires)

	snap := payload.HardwareSnapshot
	fmt.Fprintf(&sb, "  Machine:  %s\n", orUnknown(snap.MachineID))
	if snap.CPU != nil {
		fmt.Fprintf(&sb, "  CPU:      %s\n", orUnknown(snap.CPU.Brand))
	}
	if snap.MemoryGB != nil {
		fmt.Fprintf(&sb, "  Memory:   %d GB\n", *snap.MemoryGB)
	}
	fmt.Fprintf(&sb, "  Captured: %s\n", snap.CapturedAt)
	if len(payload.Parts) > 0 && string(payload.Parts) != "null" {
		fmt.Fprintf(&sb, "  Parts:    %d bytes of parts data\n", len(payload.Parts))
	}

	return sb.String()
}

// FormatVerifyResult renders the combined verification outcome.
func (f *Formatter) FormatVerifyResult(res *VerifyResult) string {
	var sb strings.Builder

	if res.SignatureValid {
		sb.WriteString("Signature: VALID\n")
	} else {
		sb.WriteString("Signature: INVALID (payload does not match the stored signature)\n")
	}

	if len(res.Mismatches) == 0 {
		sb.WriteString("Hardware:  matches the saved snapshot\n")
	} else {
		fmt.Fprintf(&sb, "Hardware:  %d mismatch(es) against the saved snapshot\n", len(res.Mismatches))
		for _, m := range res.Mismatches {
			fmt.Fprintf(&sb, "  - %s\n", m)
		}
	}

	fmt.Fprintf(&sb, "Buyer:     %s, purchased %s, warranty %d days, expires %s\n",
		res.Buyer.Name, res.Buyer.PurchaseDate, res.Buyer.WarrantyDays, res.Buyer.WarrantyExpires)

	return sb.String()
}

func orUnknown(p *string) string {
	if p == nil || *p == "" {
		return "(unknown)"
	}
	return *p
}
