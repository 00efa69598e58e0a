package storage

import (
	"context"
	"io"
)

// Storage persists uploaded media files and resolves their public URLs.
type Storage interface {
	// Save writes the file under the given name and returns the stored
	// path, relative to the media root.
	Save(ctx context.Context, name string, r io.Reader) (string, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// URL resolves a stored path to the URL clients fetch it from.
	URL(path string) string
}
