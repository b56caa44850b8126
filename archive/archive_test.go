package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxsl13/pkgdirs/model"
)

func collect(t *testing.T, walk func(WalkFunc) error) map[string]model.File {
	t.Helper()
	out := make(map[string]model.File)
	err := walk(func(path string, info fs.FileInfo, err error) error {
		require.NoError(t, err)
		f := model.FromFileInfo(path, info, OwnerOf(info))
		out[f.Path] = f
		return nil
	})
	require.NoError(t, err)
	return out
}

func tarFixture(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeDir,
		Name:     "./var/lib/app/",
		Mode:     0o750,
		Uid:      100,
		Gid:      101,
		Uname:    "app",
		Gname:    "app",
	}))
	content := []byte("hello")
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeReg,
		Name:     "./etc/app.conf",
		Mode:     0o644,
		Size:     int64(len(content)),
		Uname:    "root",
		Gname:    "root",
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func TestWalkTar(t *testing.T) {
	data := tarFixture(t)
	files := collect(t, func(fn WalkFunc) error {
		return WalkTar(bytes.NewReader(data), fn)
	})

	require.Len(t, files, 2)
	dir := files["var/lib/app"]
	assert.True(t, dir.Mode.IsDir())
	assert.Equal(t, fs.FileMode(0o750), dir.Mode.Perm())
	assert.Equal(t, model.Owner{Username: "app", Groupname: "app", Uid: 100, Gid: 101}, dir.Owner)

	conf := files["etc/app.conf"]
	assert.True(t, conf.Mode.IsRegular())
}

func TestWalkTarGzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write(tarFixture(t))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	files := collect(t, func(fn WalkFunc) error {
		return WalkTarGzip(&buf, fn)
	})
	assert.Contains(t, files, "var/lib/app")
}

func TestWalkZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	hdr := &zip.FileHeader{Name: "srv/data/"}
	hdr.SetMode(fs.ModeDir | 0o700)
	_, err := zw.CreateHeader(hdr)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	files := collect(t, func(fn WalkFunc) error {
		return WalkZip(bytes.NewReader(buf.Bytes()), int64(buf.Len()), fn)
	})

	dir := files["srv/data"]
	assert.True(t, dir.Mode.IsDir())
	assert.Equal(t, fs.FileMode(0o700), dir.Mode.Perm())
	assert.Equal(t, model.Owner{Uid: -1, Gid: -1}, dir.Owner)
}

func TestWalkCPIO(t *testing.T) {
	var buf bytes.Buffer
	cw := cpio.NewWriter(&buf)
	require.NoError(t, cw.WriteHeader(&cpio.Header{
		Name: "./run/app",
		Mode: 0o040710,
		Uid:  5,
		Guid: 6,
	}))
	require.NoError(t, cw.Close())

	files := collect(t, func(fn WalkFunc) error {
		return WalkCPIO(&buf, fn)
	})

	dir := files["run/app"]
	assert.True(t, dir.Mode.IsDir())
	assert.Equal(t, fs.FileMode(0o710), dir.Mode.Perm())
	assert.Equal(t, 5, dir.Uid)
	assert.Equal(t, 6, dir.Gid)
	assert.Empty(t, dir.Username)
}

func TestWalkDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "var", "lib", "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "var", "file"), nil, 0o644))

	files := collect(t, func(fn WalkFunc) error {
		return Walk(root, fn)
	})

	assert.True(t, files["var/lib/app"].Mode.IsDir())
	assert.True(t, files["var/file"].Mode.IsRegular())
}

func TestWalkFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.tar")
	require.NoError(t, os.WriteFile(path, tarFixture(t), 0o644))

	files := collect(t, func(fn WalkFunc) error {
		return Walk(path, fn)
	})
	assert.Len(t, files, 2)
}

func TestWalkUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.deb")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	err := Walk(path, func(string, fs.FileInfo, error) error { return nil })
	assert.Error(t, err)
}

func TestIsSupported(t *testing.T) {
	for _, p := range []string{"a.rpm", "a.tar.gz", "a.tgz", "a.tar.xz", "a.tar.zst", "a.zip", "a.7z", "a.cpio"} {
		assert.True(t, IsSupported(p), p)
	}
	assert.False(t, IsSupported("a.deb"))
	assert.True(t, IsSupported(t.TempDir()))
}
