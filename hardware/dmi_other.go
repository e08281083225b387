//go:build !linux

package hardware

// collectDMI has no portable source outside Linux sysfs; BIOS and baseboard
// stay absent on other platforms.
func (c *Collector) collectDMI(snap *Snapshot) error {
	return nil
}
