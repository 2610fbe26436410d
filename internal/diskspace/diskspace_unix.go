//go:build !windows

package diskspace

import "golang.org/x/sys/unix"

// availableBytes returns the space available to a non-root user on the
// filesystem containing dir, or 0 if the filesystem cannot be queried.
func availableBytes(dir string) int64 {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0
	}

	// stat.Bavail = blocks available to non-root users
	// stat.Bsize = block size in bytes
	return int64(stat.Bavail) * int64(stat.Bsize)
}
