// Package dirs validates directory declarations of a package configuration
// and renders them into file attributes of a packaging backend.
package dirs

import (
	"strconv"
	"strings"
)

// DefaultMode is used for entries without a mode field.
const DefaultMode uint16 = 0o755

// permMask keeps the user, group and other permission bits only.
const permMask = 0o777

// Dir is a validated directory declaration. It cannot be modified after Parse
// created it.
type Dir struct {
	index int
	path  string
	user  optional
	group optional
	mode  uint16
	caps  optional
}

type optional struct {
	value string
	set   bool
}

func (o optional) get() (string, bool) {
	return o.value, o.set
}

// Index is the position of the declaration in the parsed sequence.
func (d Dir) Index() int { return d.index }

// Path is the target directory as given in the declaration.
func (d Dir) Path() string { return d.path }

func (d Dir) User() (string, bool)  { return d.user.get() }
func (d Dir) Group() (string, bool) { return d.group.get() }
func (d Dir) Caps() (string, bool)  { return d.caps.get() }

// Mode returns the permission bits, always within 0o000 and 0o777.
func (d Dir) Mode() uint16 { return d.mode }

// Parse validates every value and converts it into a Dir.
// The result has the same length and order as values.
// Parsing stops at the first invalid field of the first invalid entry.
func Parse(values []Value) ([]Dir, error) {
	dirs := make([]Dir, 0, len(values))
	for idx, value := range values {
		dir, err := parseDir(idx, value)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

// field extraction order determines which error a broken entry reports.
func parseDir(idx int, value Value) (Dir, error) {
	table, ok := value.AsTable()
	if !ok {
		return Dir{}, &WrongBaseTypeError{Index: idx}
	}

	v, found := table.Get("dir")
	if !found {
		return Dir{}, &MissingFieldError{Index: idx, Field: "dir"}
	}
	path, ok := v.AsString()
	if !ok {
		// the label differs from the key on purpose, existing users match on it
		return Dir{}, &WrongFieldTypeError{Index: idx, Field: "dest", Expected: "string"}
	}

	user, err := optionalString(idx, table, "user")
	if err != nil {
		return Dir{}, err
	}

	group, err := optionalString(idx, table, "group")
	if err != nil {
		return Dir{}, err
	}

	mode, err := parseMode(idx, table)
	if err != nil {
		return Dir{}, err
	}

	caps, err := optionalString(idx, table, "caps")
	if err != nil {
		return Dir{}, err
	}

	return Dir{
		index: idx,
		path:  path,
		user:  user,
		group: group,
		mode:  mode,
		caps:  caps,
	}, nil
}

func optionalString(idx int, table Table, key string) (optional, error) {
	v, found := table.Get(key)
	if !found {
		return optional{}, nil
	}
	s, ok := v.AsString()
	if !ok {
		return optional{}, &WrongFieldTypeError{Index: idx, Field: key, Expected: "string"}
	}
	return optional{value: s, set: true}, nil
}

func parseMode(idx int, table Table) (uint16, error) {
	v, found := table.Get("mode")
	if !found {
		return DefaultMode, nil
	}
	s, ok := v.AsString()
	if !ok {
		return 0, &WrongFieldTypeError{Index: idx, Field: "mode", Expected: "string"}
	}
	mode, err := ParseOctal(s)
	if err != nil {
		return 0, &WrongFieldTypeError{Index: idx, Field: "mode", Expected: "oct-string"}
	}
	// setuid, setgid and sticky bits are dropped
	return mode & permMask, nil
}

// ParseOctal parses an unsigned 16 bit octal number.
// A single leading '+' is accepted, prefixes like "0o" are not.
func ParseOctal(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 8, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
