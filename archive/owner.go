package archive

import (
	"archive/tar"
	"io/fs"

	"github.com/cavaliergopher/cpio"

	"github.com/jxsl13/pkgdirs/model"
)

// OwnerOf returns the ownership an archive stores for info.
// Ids that are not known are -1, names that are not known are empty.
func OwnerOf(info fs.FileInfo) model.Owner {
	owner := model.Owner{Uid: -1, Gid: -1}

	if owned, ok := info.(ownedFileInfo); ok {
		owner = OwnerOf(owned.FileInfo)
		owner.Username = owned.user
		owner.Groupname = owned.group
		return owner
	}

	switch stat := info.Sys().(type) {
	case *tar.Header:
		owner.Uid = stat.Uid
		owner.Gid = stat.Gid
		owner.Username = stat.Uname
		owner.Groupname = stat.Gname
	case *cpio.Header:
		owner.Uid = stat.Uid
		owner.Gid = stat.Guid
	default:
		if uid, gid, ok := statOwner(info); ok {
			owner.Uid = uid
			owner.Gid = gid
		}
	}
	return owner
}
