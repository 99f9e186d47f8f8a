package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MakeDir creates a directory with all parent directories
func MakeDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// DeleteFile removes a file. A missing file is not an error.
func DeleteFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// UploadExt returns the lower-cased extension of name, or ".bin" when it has
// none or it looks bogus.
func UploadExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || len(ext) > 8 {
		return ".bin"
	}
	return ext
}

// ScratchFile is an upload spooled to disk under a random name.
type ScratchFile struct {
	*os.File
	Size int64
}

// Remove closes and deletes the file.
func (f *ScratchFile) Remove() error {
	f.File.Close()
	return DeleteFile(f.Name())
}

// SaveUpload copies r into a new file in dir named genredna-<uuid><ext>.
// Every byte is also written to the extra writers (hashers, counters). The
// returned file is rewound and must be released with Remove.
func SaveUpload(dir, name string, r io.Reader, extra ...io.Writer) (*ScratchFile, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := MakeDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, "genredna-"+uuid.NewString()+UploadExt(name))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	sf := &ScratchFile{File: f}

	size, err := io.Copy(io.MultiWriter(append([]io.Writer{f}, extra...)...), r)
	if err != nil {
		sf.Remove()
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}
	sf.Size = size

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		sf.Remove()
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}
	return sf, nil
}
