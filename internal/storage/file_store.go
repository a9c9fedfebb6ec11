// Package storage persists uploaded listing images on local disk.
// Files are stored flat under a base directory with generated names so
// that user-supplied filenames never touch the filesystem; listings
// reference assets by the stored name only.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedImage is returned when an upload's extension is not in
// the allow-list.
var ErrUnsupportedImage = errors.New("unsupported image type")

// imageExts is the allow-list of upload extensions.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStore saves listing images under a base directory.
type ImageStore struct {
	basePath string
}

// NewImageStore creates the base directory if missing.
func NewImageStore(basePath string) (*ImageStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &ImageStore{basePath: basePath}, nil
}

// Save writes an uploaded image and returns the stored file name.  The
// name is a fresh UUID carrying the original extension; only the
// extension of originalName is trusted.
func (s *ImageStore) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !imageExts[ext] {
		return "", ErrUnsupportedImage
	}
	name := uuid.NewString() + ext

	out, err := os.Create(filepath.Join(s.basePath, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored image.  A missing file is not an error: the
// asset is already gone, which is what the caller wanted.
func (s *ImageStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.basePath, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

// Path returns the on-disk path of a stored image.
func (s *ImageStore) Path(name string) string {
	return filepath.Join(s.basePath, filepath.Base(name))
}
