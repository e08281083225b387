// Package hardware models a point-in-time capture of a machine's
// hardware-identifying attributes and provides collectors for producing one.
//
// Every field of a Snapshot is best-effort: when the underlying query
// cannot supply a value the field is nil and serializes as JSON null.
// Collection never fails because of a single unavailable source; a partial
// snapshot is a valid snapshot.
package hardware

import "context"

// TimestampLayout is the ISO-8601 UTC format used throughout the fingerprint
// document (millisecond precision, explicit Z suffix).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Source supplies hardware snapshots. The production implementation is
// Collector; tests inject a StaticSource.
type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Snapshot is a capture of the machine's identifying hardware attributes.
// Nil fields mean "unknown", never "empty".
type Snapshot struct {
	MachineID  *string     `json:"machineId"`
	Platform   *string     `json:"platform"`
	Arch       *string     `json:"arch"`
	Hostname   *string     `json:"hostname"`
	CPU        *CPU        `json:"cpu"`
	BIOS       *BIOS       `json:"bios"`
	Baseboard  *Baseboard  `json:"baseboard"`
	Disk       *Disk       `json:"disk"`
	Network    []Interface `json:"network"`
	MemoryGB   *uint64     `json:"memoryGb"`
	OS         *OS         `json:"os"`
	CapturedAt string      `json:"capturedAt"`
}

// CPU describes the processor package.
type CPU struct {
	Manufacturer  *string  `json:"manufacturer"`
	Brand         *string  `json:"brand"`
	SpeedGHz      *float64 `json:"speedGhz"`
	PhysicalCores *int     `json:"physicalCores"`
	LogicalCores  *int     `json:"logicalCores"`
}

// BIOS describes the firmware as reported by DMI.
type BIOS struct {
	Vendor      *string `json:"vendor"`
	Version     *string `json:"version"`
	ReleaseDate *string `json:"releaseDate"`
	Serial      *string `json:"serial"`
}

// Baseboard describes the mainboard as reported by DMI.
type Baseboard struct {
	Manufacturer *string `json:"manufacturer"`
	Model        *string `json:"model"`
	Serial       *string `json:"serial"`
}

// Disk describes the primary disk (first entry of the disk layout).
type Disk struct {
	Vendor    *string `json:"vendor"`
	Name      *string `json:"name"`
	SizeBytes *uint64 `json:"sizeBytes"`
	Serial    *string `json:"serial"`
}

// Interface describes one non-loopback network interface.
type Interface struct {
	Name string  `json:"iface"`
	MAC  *string `json:"mac"`
	IP4  *string `json:"ip4"`
	IP6  *string `json:"ip6"`
}

// OS describes the operating system.
type OS struct {
	Platform *string `json:"platform"`
	Distro   *string `json:"distro"`
	Release  *string `json:"release"`
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Uint64 returns a pointer to n.
func Uint64(n uint64) *uint64 { return &n }

// Float64 returns a pointer to f.
func Float64(f float64) *float64 { return &f }

// StaticSource is a Source returning a fixed snapshot, for tests.
type StaticSource struct {
	Snap *Snapshot
	Err  error
}

// Snapshot returns the configured snapshot or error.
func (s *StaticSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	return s.Snap, s.Err
}
