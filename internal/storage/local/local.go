package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage stores media files on the local filesystem under a media root
// directory and serves them under a base URL.
type Storage struct {
	root    string
	baseURL string
}

// New creates a local-disk storage rooted at dir. Files become reachable
// under baseURL (e.g. "/media").
func New(dir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create media dir %s: %w", dir, err)
	}

	return &Storage{
		root:    dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Save writes the file under a collision-free name derived from the
// original and returns the stored path.
func (s *Storage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stored := uuid.NewString() + sanitizeExt(name)
	dst := filepath.Join(s.root, stored)

	f, err := os.Create(dst) // #nosec G304 -- path is server-generated, not caller input
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write media file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close media file: %w", err)
	}

	return stored, nil
}

// Delete removes a stored file. Missing files are ignored.
func (s *Storage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Reject traversal; stored paths are flat names.
	if filepath.Base(path) != path {
		return fmt.Errorf("invalid media path %q", path)
	}

	err := os.Remove(filepath.Join(s.root, path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}

	return nil
}

// URL resolves a stored path to its public URL.
func (s *Storage) URL(path string) string {
	return s.baseURL + "/" + path
}

// Root returns the media root directory, used to mount the static file server.
func (s *Storage) Root() string {
	return s.root
}

// sanitizeExt keeps only a simple extension from the uploaded name.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
