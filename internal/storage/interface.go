package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidKey         = errors.New("invalid storage key")
	ErrFileNotFound       = errors.New("file not found")
	ErrUnsupportedContent = errors.New("unsupported image type")
)

// Storage defines the interface for uploaded image backends.
// Keys are slash-separated relative paths such as "products/12/<uuid>.png".
type Storage interface {
	// Save writes the reader's content under key, replacing any existing file
	Save(ctx context.Context, key string, r io.Reader) error

	// Open returns the stored file; ErrFileNotFound when it does not exist
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the file; deleting a missing file is not an error
	Delete(ctx context.Context, key string) error

	// URL is the public address the file is served from
	URL(key string) string

	// KeyFromURL reverses URL for files this storage owns
	KeyFromURL(url string) (string, bool)
}

// imageExtensions maps accepted image content types to file extensions.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// NewImageKey returns a fresh key under prefix for an image of the given
// content type.
func NewImageKey(prefix, contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedContent, contentType)
	}
	return prefix + "/" + uuid.NewString() + ext, nil
}

// ContentType returns the image content type for a key's extension.
func ContentType(key string) string {
	for ct, ext := range imageExtensions {
		if strings.HasSuffix(key, ext) {
			return ct
		}
	}
	return "application/octet-stream"
}
