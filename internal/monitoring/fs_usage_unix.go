//go:build linux || darwin || freebsd || netbsd || openbsd

package monitoring

import "golang.org/x/sys/unix"

// uploadsDiskUsage reports capacity of the filesystem backing the uploads
// root. Free space is what an unprivileged writer can still use.
func uploadsDiskUsage(path string) (totalBytes, freeBytes uint64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}

	blockSize := uint64(stat.Bsize)
	return stat.Blocks * blockSize, stat.Bavail * blockSize
}
