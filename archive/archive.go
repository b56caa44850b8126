package archive

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var supportedExtensions = map[string]bool{
	".gz":   true,
	".tgz":  true,
	".xz":   true,
	".zst":  true,
	".tar":  true,
	".zip":  true,
	".7z":   true,
	".cpio": true,
	".rpm":  true,
}

// WalkFunc is called for every entry of an archive. Compressed archives
// are walked as tar archives.
type WalkFunc func(path string, info fs.FileInfo, err error) error

func IsSupported(path string) bool {
	_, found := supportedExtensions[filepath.Ext(path)]
	if found {
		return true
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.IsDir()
}

// Walk walks over the entries of the archive or directory at path.
func Walk(path string, walkFunc WalkFunc) error {

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}
	if stat.IsDir() {
		return filepath.Walk(path, func(p string, info fs.FileInfo, err error) error {
			if err != nil {
				return walkFunc(p, info, err)
			}
			rel, err := filepath.Rel(path, p)
			if err != nil {
				return err
			}
			return walkFunc(filepath.ToSlash(rel), info, nil)
		})
	}

	ext := filepath.Ext(path)
	switch ext {
	case ".gz", ".tgz":
		return WalkTarGzip(f, walkFunc)
	case ".xz":
		return WalkTarXz(f, walkFunc)
	case ".zst":
		return WalkTarZstd(f, walkFunc)
	case ".tar":
		return WalkTar(f, walkFunc)
	case ".zip":
		return WalkZip(f, stat.Size(), walkFunc)
	case ".7z":
		return Walk7Zip(f, stat.Size(), walkFunc)
	case ".cpio":
		return WalkCPIO(f, walkFunc)
	case ".rpm":
		return WalkRPM(f, walkFunc)
	}
	return fmt.Errorf("unknown file extension: %s", ext)
}
