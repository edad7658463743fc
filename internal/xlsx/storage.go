package xlsx

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage receives the finished parts of the package. Implementations write
// to a ZIP archive or to a directory tree.
type Storage interface {
	WriteBlob(path string, blob []byte) error
}

// DirStorage writes parts into a directory structure on disk. Useful for
// inspecting the generated XML.
type DirStorage struct {
	Dir string
}

// ZipStorage writes parts into a ZIP archive, producing the actual .xlsx
// container.
type ZipStorage struct {
	z *zip.Writer
}

func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{
		Dir: dir,
	}
}

// WriteBlob writes a part under the root directory, creating any parent
// directories.
func (ds *DirStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	fn := filepath.Join(ds.Dir, path)
	err := os.MkdirAll(filepath.Dir(fn), 0o777)
	if err != nil {
		return err
	}
	return os.WriteFile(fn, blob, 0o666)
}

func NewZipStorage(out io.Writer) *ZipStorage {
	return &ZipStorage{z: zip.NewWriter(out)}
}

// WriteBlob adds one named entry to the archive.
func (zs *ZipStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	f, err := zs.z.Create(path)
	if err != nil {
		return err
	}
	_, err = f.Write(blob)
	return err
}

// Close finalizes the archive. Skipping it leaves a truncated, unopenable
// file behind.
func (zs *ZipStorage) Close() error {
	return zs.z.Close()
}
