// Package images stores base64-submitted images on local disk, the way the
// API accepts profile pictures, cover images and product photos.
package images

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var dataURLPrefix = regexp.MustCompile(`^data:image/(\w+);base64,`)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store writes images under a root directory, one sub-folder per usage
// (profile_pictures, cover_images, products).
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

// Decode strips an optional data-URL prefix and decodes the base64 payload.
func Decode(b64 string) ([]byte, error) {
	payload := dataURLPrefix.ReplaceAllString(strings.TrimSpace(b64), "")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.New("invalid base64 string")
	}
	return data, nil
}

// IsValidImage reports whether the base64 payload decodes to a supported
// image format.
func IsValidImage(b64 string) bool {
	data, err := Decode(b64)
	if err != nil {
		return false
	}
	ext := mimetype.Detect(data).Extension()
	return allowedExtensions[ext]
}

// SaveResult describes a stored image file.
type SaveResult struct {
	FileName string
	FilePath string // relative to the storage root
	FileType string // mime type
	FileSize int64
}

// Save decodes the base64 payload, sniffs its type and writes it under
// folder with a random name. When oldPath is non-empty the previous file is
// removed after a successful write.
func (s *Store) Save(b64, folder, oldPath string) (*SaveResult, error) {
	data, err := Decode(b64)
	if err != nil {
		return nil, err
	}

	mime := mimetype.Detect(data)
	ext := mime.Extension()
	if !allowedExtensions[ext] {
		return nil, errors.New("invalid image data")
	}

	fileName := uuid.NewString() + ext
	relPath := filepath.Join(folder, fileName)

	if err := os.MkdirAll(filepath.Join(s.root, folder), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(s.root, relPath), data, 0o644); err != nil {
		return nil, err
	}

	if oldPath != "" {
		// Best effort; a stale file is not worth failing the request.
		_ = os.Remove(filepath.Join(s.root, oldPath))
	}

	return &SaveResult{
		FileName: fileName,
		FilePath: relPath,
		FileType: mime.String(),
		FileSize: int64(len(data)),
	}, nil
}
