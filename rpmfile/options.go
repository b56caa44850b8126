// Package rpmfile holds the attributes of a single file entry of an rpm
// package: its mode, ownership and file capabilities.
package rpmfile

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	DefaultUser  = "root"
	DefaultGroup = "root"
)

// FileOptions describes how a path is declared in an rpm package.
type FileOptions struct {
	Path  string
	Mode  FileMode
	User  string
	Group string
	Caps  string
}

// New returns the options of a root owned regular file.
func New(path string) *FileOptions {
	return &FileOptions{
		Path:  path,
		Mode:  Regular(0o644),
		User:  DefaultUser,
		Group: DefaultGroup,
	}
}

func (o *FileOptions) SetDirMode(perm uint16) {
	o.Mode = Dir(perm)
}

func (o *FileOptions) SetUser(user string) {
	o.User = user
}

func (o *FileOptions) SetGroup(group string) {
	o.Group = group
}

// SetCaps sets the file capabilities after validating their text form.
func (o *FileOptions) SetCaps(caps string) error {
	if _, err := ParseCaps(caps); err != nil {
		return err
	}
	o.Caps = caps
	return nil
}

// SpecLine renders the options as a line of the %files section of a spec file.
func (o *FileOptions) SpecLine() string {
	var sb strings.Builder
	if o.Mode.IsDir() {
		sb.WriteString("%dir ")
	}
	fmt.Fprintf(&sb, "%%attr(%04o,%s,%s) ", o.Mode.Perm(), o.User, o.Group)
	if o.Caps != "" {
		fmt.Fprintf(&sb, "%%caps(%s) ", o.Caps)
	}
	sb.WriteString(o.Path)
	return sb.String()
}

type fileOptionsJSON struct {
	Path  string `json:"path"`
	Mode  uint16 `json:"mode"`
	Perm  string `json:"perm"`
	Dir   bool   `json:"dir"`
	User  string `json:"user"`
	Group string `json:"group"`
	Caps  string `json:"caps,omitempty"`
}

func (o *FileOptions) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileOptionsJSON{
		Path:  o.Path,
		Mode:  uint16(o.Mode),
		Perm:  fmt.Sprintf("%04o", o.Mode.Perm()),
		Dir:   o.Mode.IsDir(),
		User:  o.User,
		Group: o.Group,
		Caps:  o.Caps,
	})
}
