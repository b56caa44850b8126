package rpmfile

import (
	"fmt"
	"io/fs"
)

// FileMode is a file mode in the layout rpm headers and cpio payloads use:
// the upper bits hold the file type, the lower twelve bits the permissions.
type FileMode uint16

const (
	TypeMask    FileMode = 0o170000
	TypeDir     FileMode = 0o040000
	TypeRegular FileMode = 0o100000
	TypeSymlink FileMode = 0o120000

	ModeSetuid FileMode = 0o4000
	ModeSetgid FileMode = 0o2000
	ModeSticky FileMode = 0o1000

	PermMask FileMode = 0o7777
)

// Dir returns the mode of a directory with the given permission bits.
func Dir(perm uint16) FileMode {
	return TypeDir | FileMode(perm)&PermMask
}

// Regular returns the mode of a regular file with the given permission bits.
func Regular(perm uint16) FileMode {
	return TypeRegular | FileMode(perm)&PermMask
}

func (m FileMode) IsDir() bool {
	return m&TypeMask == TypeDir
}

// Perm returns the permission bits including setuid, setgid and sticky.
func (m FileMode) Perm() uint16 {
	return uint16(m & PermMask)
}

// FileMode converts m into the representation of the io/fs package.
func (m FileMode) FileMode() fs.FileMode {
	mode := fs.FileMode(m & 0o777)
	switch m & TypeMask {
	case TypeDir:
		mode |= fs.ModeDir
	case TypeSymlink:
		mode |= fs.ModeSymlink
	}
	if m&ModeSetuid != 0 {
		mode |= fs.ModeSetuid
	}
	if m&ModeSetgid != 0 {
		mode |= fs.ModeSetgid
	}
	if m&ModeSticky != 0 {
		mode |= fs.ModeSticky
	}
	return mode
}

func (m FileMode) String() string {
	return fmt.Sprintf("%06o", uint16(m))
}
