//go:build linux

package hardware

import (
	"os"
	"path/filepath"
	"strings"
)

const dmiRoot = "/sys/class/dmi/id"

// collectDMI fills BIOS and baseboard descriptors from sysfs. Individual
// attributes may be unreadable (containers, permissions); each one degrades
// to nil on its own.
func (c *Collector) collectDMI(snap *Snapshot) error {
	bios := &BIOS{
		Vendor:      readDMIAttr("bios_vendor"),
		Version:     readDMIAttr("bios_version"),
		ReleaseDate: readDMIAttr("bios_date"),
		Serial:      readDMIAttr("product_serial"),
	}
	if bios.Vendor != nil || bios.Version != nil || bios.ReleaseDate != nil || bios.Serial != nil {
		snap.BIOS = bios
	}

	board := &Baseboard{
		Manufacturer: readDMIAttr("board_vendor"),
		Model:        readDMIAttr("board_name"),
		Serial:       readDMIAttr("board_serial"),
	}
	if board.Manufacturer != nil || board.Model != nil || board.Serial != nil {
		snap.Baseboard = board
	}
	return nil
}

func readDMIAttr(name string) *string {
	b, err := os.ReadFile(filepath.Join(dmiRoot, name))
	if err != nil {
		return nil
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return nil
	}
	return &v
}
