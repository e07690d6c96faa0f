//go:build linux

package sysmem

import "golang.org/x/sys/unix"

// totalSystemMemory reads total RAM from sysinfo(2).
func totalSystemMemory() (uint64, bool) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, false
	}
	return uint64(info.Totalram) * uint64(info.Unit), true
}
