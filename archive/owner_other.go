//go:build !unix

package archive

import "io/fs"

func statOwner(fs.FileInfo) (uid, gid int, ok bool) {
	return -1, -1, false
}
