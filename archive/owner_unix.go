//go:build unix

package archive

import (
	"io/fs"
	"syscall"
)

func statOwner(fi fs.FileInfo) (uid, gid int, ok bool) {
	if stat, ok := fi.Sys().(*syscall.Stat_t); ok {
		return int(stat.Uid), int(stat.Gid), true
	}
	return -1, -1, false
}
