package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"io"
	"path"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

func WalkTarGzip(file io.Reader, walkFunc WalkFunc) error {
	gr, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer gr.Close()
	return WalkTar(gr, walkFunc)
}

func WalkTarXz(file io.Reader, walkFunc WalkFunc) error {
	xr, err := xz.NewReader(file)
	if err != nil {
		return err
	}
	return WalkTar(xr, walkFunc)
}

func WalkTarZstd(file io.Reader, walkFunc WalkFunc) error {
	zr, err := zstd.NewReader(file)
	if err != nil {
		return err
	}
	defer zr.Close()
	return WalkTar(zr, walkFunc)
}

// WalkTar may be passed a compressed reader instead of an explicit file
func WalkTar(file io.Reader, walkFunc WalkFunc) error {

	tr := tar.NewReader(file)

	for {
		// defines a sub error in the loop scope
		header, err := tr.Next()

		switch {
		// if no more files are found return
		case errors.Is(err, io.EOF):
			return nil

		// return any other error
		case err != nil:
			return err

		// if the header is nil, just skip it (not sure how this happens)
		case header == nil:
			continue
		}

		// file contents are skipped by the next call to tr.Next
		err = walkFunc(path.Clean(header.Name), header.FileInfo(), nil)
		if err != nil {
			return err
		}
	}
}
