// Package compare diffs two hardware snapshots over a fixed, ordered field
// checklist and reports human-readable mismatches.
//
// This is deliberately a shallow, fixed-field comparison rather than a
// generic deep diff: only fields chosen for stability participate, so
// volatile attributes (timestamps, dynamic IPs, clock speed) can never
// produce a false positive. A field that is unknown on both sides is
// treated as "unknown, not conflicting" and reports nothing.
package compare

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/warrantyseal/warrantyseal/hardware"
)

// Mismatch is one detected difference between the saved and current
// snapshot.
type Mismatch struct {
	Field   string `json:"field"`
	Saved   string `json:"saved"`
	Current string `json:"current"`
}

const absent = "(missing)"

// String renders the mismatch for human-readable reports.
func (m Mismatch) String() string {
	return fmt.Sprintf("%s: saved=%s current=%s", m.Field, m.Saved, m.Current)
}

// fieldValue is one side of a checklist comparison: whether the snapshot
// knows the field at all, and its string representation when it does.
type fieldValue struct {
	present bool
	repr    string
}

// Snapshots compares the saved snapshot against the current one. The
// checklist order is fixed so reports are reproducible: machine identifier,
// CPU brand, CPU physical cores, BIOS serial, baseboard serial, primary
// disk serial, MAC address set, memory size.
func Snapshots(saved, current *hardware.Snapshot) []Mismatch {
	if saved == nil {
		saved = &hardware.Snapshot{}
	}
	if current == nil {
		current = &hardware.Snapshot{}
	}

	checks := []struct {
		field string
		pick  func(*hardware.Snapshot) fieldValue
	}{
		{"machineId", func(s *hardware.Snapshot) fieldValue { return str(s.MachineID) }},
		{"cpu.brand", func(s *hardware.Snapshot) fieldValue {
			if s.CPU == nil {
				return fieldValue{}
			}
			return str(s.CPU.Brand)
		}},
		{"cpu.physicalCores", func(s *hardware.Snapshot) fieldValue {
			if s.CPU == nil {
				return fieldValue{}
			}
			return num(s.CPU.PhysicalCores)
		}},
		{"bios.serial", func(s *hardware.Snapshot) fieldValue {
			if s.BIOS == nil {
				return fieldValue{}
			}
			return str(s.BIOS.Serial)
		}},
		{"baseboard.serial", func(s *hardware.Snapshot) fieldValue {
			if s.Baseboard == nil {
				return fieldValue{}
			}
			return str(s.Baseboard.Serial)
		}},
		{"disk.serial", func(s *hardware.Snapshot) fieldValue {
			if s.Disk == nil {
				return fieldValue{}
			}
			return str(s.Disk.Serial)
		}},
		{"network.macs", func(s *hardware.Snapshot) fieldValue { return macSet(s.Network) }},
		{"memoryGb", func(s *hardware.Snapshot) fieldValue {
			if s.MemoryGB == nil {
				return fieldValue{}
			}
			return fieldValue{present: true, repr: strconv.FormatUint(*s.MemoryGB, 10)}
		}},
	}

	var mismatches []Mismatch
	for _, check := range checks {
		s, c := check.pick(saved), check.pick(current)
		if !s.present && !c.present {
			continue
		}
		if s.present != c.present || s.repr != c.repr {
			mismatches = append(mismatches, Mismatch{
				Field:   check.field,
				Saved:   display(s),
				Current: display(c),
			})
		}
	}
	return mismatches
}

func display(v fieldValue) string {
	if !v.present {
		return absent
	}
	return v.repr
}

func str(p *string) fieldValue {
	if p == nil {
		return fieldValue{}
	}
	return fieldValue{present: true, repr: *p}
}

func num(p *int) fieldValue {
	if p == nil {
		return fieldValue{}
	}
	return fieldValue{present: true, repr: strconv.Itoa(*p)}
}

// macSet normalizes the interface list into a sorted, comma-joined MAC
// string so membership changes trigger exactly one mismatch regardless of
// interface enumeration order.
func macSet(ifaces []hardware.Interface) fieldValue {
	var macs []string
	for _, iface := range ifaces {
		if iface.MAC == nil || *iface.MAC == "" {
			continue
		}
		macs = append(macs, strings.ToLower(*iface.MAC))
	}
	if len(macs) == 0 {
		return fieldValue{}
	}
	sort.Strings(macs)
	return fieldValue{present: true, repr: strings.Join(macs, ",")}
}
