package model

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/jxsl13/pkgdirs/rpmfile"
)

type MismatchKind string

const (
	Missing    MismatchKind = "missing"
	NotADir    MismatchKind = "not a directory"
	WrongMode  MismatchKind = "mode"
	WrongUser  MismatchKind = "user"
	WrongGroup MismatchKind = "group"
)

// Mismatch is a difference between a declared directory and the archive.
type Mismatch struct {
	Path     string
	Kind     MismatchKind
	Expected string
	Actual   string
}

func (m Mismatch) String() string {
	if m.Kind == Missing {
		return fmt.Sprintf("%s: %s", m.Kind, m.Path)
	}
	return fmt.Sprintf("%s: %s %s -> %s", m.Kind, m.Path, m.Expected, m.Actual)
}

// Verify compares every declared directory with the archive entries, which
// must be keyed by CleanPath. The result is sorted by path.
func Verify(declared []*rpmfile.FileOptions, entries map[string]File) []Mismatch {
	result := make([]Mismatch, 0)
	for _, opts := range declared {
		result = append(result, verifyOne(opts, entries)...)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

func verifyOne(opts *rpmfile.FileOptions, entries map[string]File) []Mismatch {
	path := CleanPath(opts.Path)
	f, found := entries[path]
	if !found {
		return []Mismatch{{Path: opts.Path, Kind: Missing}}
	}

	var result []Mismatch
	if opts.Mode.IsDir() && !f.Mode.IsDir() {
		result = append(result, Mismatch{
			Path:     opts.Path,
			Kind:     NotADir,
			Expected: "directory",
			Actual:   typeString(f.Mode),
		})
	}

	// a sticky bit in the archive counts as a different mode
	want := File{Mode: opts.Mode.FileMode()}
	if f.Perm() != want.Perm() {
		result = append(result, Mismatch{
			Path:     opts.Path,
			Kind:     WrongMode,
			Expected: want.PermString(),
			Actual:   f.PermString(),
		})
	}

	// archives without owner names cannot be checked
	if f.Username != "" && f.Username != opts.User {
		result = append(result, Mismatch{Path: opts.Path, Kind: WrongUser, Expected: opts.User, Actual: f.Username})
	}
	if f.Groupname != "" && f.Groupname != opts.Group {
		result = append(result, Mismatch{Path: opts.Path, Kind: WrongGroup, Expected: opts.Group, Actual: f.Groupname})
	}
	return result
}

// FromFileInfo converts the info of an archive entry.
func FromFileInfo(path string, info fs.FileInfo, owner Owner) File {
	return File{
		Path:  CleanPath(path),
		Mode:  info.Mode(),
		Owner: owner,
	}
}

func typeString(mode fs.FileMode) string {
	if mode.IsRegular() {
		return "file"
	}
	return mode.Type().String()
}
