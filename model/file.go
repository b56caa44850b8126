package model

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// File is a single entry of a package or archive.
type File struct {
	Path string
	Mode fs.FileMode
	Owner
}

// Owner holds the ownership of a file. Archives that do not store names
// leave Username and Groupname empty, unknown ids are -1.
type Owner struct {
	Username  string
	Groupname string
	Uid       int
	Gid       int
}

var ownerFormat = "%s:%s (%d:%d)"

// SetOwnerFormat allows to increase the format spacing by providing the corresponding parameters.
func SetOwnerFormat(maxUser, maxGroup, maxUid, maxGid int) {
	ownerFormat = fmt.Sprintf("%%%ds:%%-%ds (%%%dd:%%-%dd)", maxUser, maxGroup, maxUid, maxGid)
}

func (f File) OwnerString() string {
	return fmt.Sprintf(ownerFormat, f.Username, f.Groupname, f.Uid, f.Gid)
}

func (f File) Perm() os.FileMode {
	const permMask = os.ModeSticky | os.ModePerm
	return f.Mode & permMask
}

func (f File) PermString() string {
	mode := f.Mode
	sticky := "0"
	if mode&fs.ModeSticky != 0 {
		sticky = "1"
	}
	return fmt.Sprintf("%s%03o",
		sticky,
		mode.Perm(),
	)
}

// CleanPath strips the leading "./" or "/" archives and rpm headers use, so
// that entries of different archive formats can be compared.
func CleanPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
