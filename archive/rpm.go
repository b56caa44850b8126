package archive

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/cavaliergopher/cpio"
	"github.com/cavaliergopher/rpm"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/jxsl13/pkgdirs/model"
)

// ownedFileInfo carries the owner names the rpm header stores for an entry
// of the cpio payload.
type ownedFileInfo struct {
	fs.FileInfo
	user  string
	group string
}

func WalkRPM(file io.Reader, walkFunc WalkFunc) error {
	// Read the package headers
	pkg, err := rpm.Read(file)
	if err != nil {
		return err
	}

	// Check the archive format of the payload
	if format := pkg.PayloadFormat(); format != "cpio" {
		return fmt.Errorf("unsupported payload format: %s", format)
	}

	files := pkg.Files()
	owners := make(map[string]ownedFileInfo, len(files))
	for i := range files {
		owners[model.CleanPath(files[i].Name())] = ownedFileInfo{
			user:  files[i].Owner(),
			group: files[i].Group(),
		}
	}

	var compReader io.Reader

	switch format := pkg.PayloadCompression(); format {
	case "xz":
		compReader, err = xz.NewReader(file)
	case "gzip":
		compReader, err = gzip.NewReader(file)
	case "zstd":
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(file)
		if err == nil {
			defer zr.Close()
		}
		compReader = zr
	default:
		return fmt.Errorf("unsupported rpm compression format: %s", format)
	}
	if err != nil {
		return err
	}

	return walkCPIO(compReader, func(name string, info fs.FileInfo, err error) error {
		if err != nil {
			return walkFunc(name, info, err)
		}
		owned, found := owners[model.CleanPath(name)]
		if !found {
			return walkFunc(name, info, nil)
		}
		owned.FileInfo = info
		return walkFunc(name, owned, nil)
	})
}

func WalkCPIO(file io.Reader, walkFunc WalkFunc) error {
	return walkCPIO(file, walkFunc)
}

func walkCPIO(file io.Reader, walkFunc WalkFunc) error {
	// Attach a reader to unarchive each file in the payload
	cpioReader := cpio.NewReader(file)
	for {
		// Move to the next file in the archive
		header, err := cpioReader.Next()
		switch {
		// if no more files are found return
		case errors.Is(err, io.EOF):
			return nil

		// return any other error
		case err != nil:
			return err
		}

		err = walkFunc(path.Clean(header.Name), header.FileInfo(), nil)
		if err != nil {
			return err
		}
	}
}
