package hardware

import (
	"context"
	"math"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"go.uber.org/zap"
)

const gib = 1 << 30

// Collector is the production Source. It fans out the independent hardware
// queries concurrently and waits for all of them; a failing query logs a
// warning and leaves its fields nil.
type Collector struct {
	log   *zap.Logger
	appID string
	now   func() time.Time
}

// NewCollector creates a Collector. appID scopes the hashed machine
// identifier so it cannot be correlated across applications.
func NewCollector(log *zap.Logger, appID string) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{log: log, appID: appID, now: time.Now}
}

// Snapshot collects a full hardware snapshot. The returned snapshot is
// final only after every sub-query resolved; fields whose query failed
// are nil.
func (c *Collector) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Platform:   String(runtime.GOOS),
		Arch:       String(runtime.GOARCH),
		CapturedAt: c.now().UTC().Format(TimestampLayout),
	}

	// Sub-queries have no ordering dependency; each one writes only its
	// own fields of snap.
	var wg sync.WaitGroup
	run := func(name string, fn func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				c.log.Warn("hardware query degraded, field left absent",
					zap.String("query", name), zap.Error(err))
			}
		}()
	}

	run("machine-id", func(ctx context.Context) error { return c.collectMachineID(snap) })
	run("host", func(ctx context.Context) error { return c.collectHost(ctx, snap) })
	run("cpu", func(ctx context.Context) error { return c.collectCPU(ctx, snap) })
	run("memory", func(ctx context.Context) error { return c.collectMemory(ctx, snap) })
	run("disk", func(ctx context.Context) error { return c.collectDisk(ctx, snap) })
	run("network", func(ctx context.Context) error { return c.collectNetwork(ctx, snap) })
	run("dmi", func(ctx context.Context) error { return c.collectDMI(snap) })

	wg.Wait()
	return snap, nil
}

func (c *Collector) collectMachineID(snap *Snapshot) error {
	id, err := machineid.ProtectedID(c.appID)
	if err != nil {
		return err
	}
	snap.MachineID = String(id)
	return nil
}

func (c *Collector) collectHost(ctx context.Context, snap *Snapshot) error {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return err
	}
	if info.Hostname != "" {
		snap.Hostname = String(info.Hostname)
	}
	osInfo := &OS{}
	if info.OS != "" {
		osInfo.Platform = String(info.OS)
	}
	if info.Platform != "" {
		osInfo.Distro = String(info.Platform)
	}
	if info.PlatformVersion != "" {
		osInfo.Release = String(info.PlatformVersion)
	}
	snap.OS = osInfo
	return nil
}

func (c *Collector) collectCPU(ctx context.Context, snap *Snapshot) error {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil || len(infos) == 0 {
		return err
	}
	first := infos[0]

	cpuInfo := &CPU{}
	if first.VendorID != "" {
		cpuInfo.Manufacturer = String(first.VendorID)
	}
	if first.ModelName != "" {
		cpuInfo.Brand = String(first.ModelName)
	}
	if first.Mhz > 0 {
		cpuInfo.SpeedGHz = Float64(math.Round(first.Mhz/10) / 100)
	}
	if physical, err := cpu.CountsWithContext(ctx, false); err == nil && physical > 0 {
		cpuInfo.PhysicalCores = Int(physical)
	}
	if logical, err := cpu.CountsWithContext(ctx, true); err == nil && logical > 0 {
		cpuInfo.LogicalCores = Int(logical)
	}
	snap.CPU = cpuInfo
	return nil
}

func (c *Collector) collectMemory(ctx context.Context, snap *Snapshot) error {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return err
	}
	// Installed memory reports slightly under its nominal size; round to
	// the nearest whole GiB so the value is stable across boots.
	snap.MemoryGB = Uint64((vm.Total + gib/2) / gib)
	return nil
}

func (c *Collector) collectDisk(ctx context.Context, snap *Snapshot) error {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil || len(parts) == 0 {
		return err
	}
	primary := parts[0]

	d := &Disk{Name: String(primary.Device)}
	if serial, err := disk.SerialNumberWithContext(ctx, primary.Device); err == nil && serial != "" {
		d.Serial = String(serial)
	}
	if usage, err := disk.UsageWithContext(ctx, primary.Mountpoint); err == nil && usage.Total > 0 {
		d.SizeBytes = Uint64(usage.Total)
	}
	snap.Disk = d
	return nil
}

func (c *Collector) collectNetwork(ctx context.Context, snap *Snapshot) error {
	ifaces, err := gnet.InterfacesWithContext(ctx)
	if err != nil {
		return err
	}

	var out []Interface
	for _, iface := range ifaces {
		if isLoopback(iface.Flags) || iface.HardwareAddr == "" {
			continue
		}
		entry := Interface{Name: iface.Name, MAC: String(iface.HardwareAddr)}
		for _, addr := range iface.Addrs {
			ip := strings.SplitN(addr.Addr, "/", 2)[0]
			switch {
			case strings.Contains(ip, ":") && entry.IP6 == nil:
				entry.IP6 = String(ip)
			case !strings.Contains(ip, ":") && entry.IP4 == nil:
				entry.IP4 = String(ip)
			}
		}
		out = append(out, entry)
	}
	snap.Network = out
	return nil
}

func isLoopback(flags []string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, "loopback") {
			return true
		}
	}
	return false
}
