// Package images serves the pre-rendered report images from a directory.
package images

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
	"github.com/jsamuelsen/wine-dashboard/internal/ports"
)

var (
	_ ports.ImageStore    = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Store resolves report images inside a single directory. Only the names
// returned by domain.ImageNames are served.
type Store struct {
	dir string
}

// NewStore creates an image store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Resolve returns the image with the given name. Unknown names and missing
// files are domain.ErrNotFound.
func (s *Store) Resolve(ctx context.Context, name string) (*domain.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !slices.Contains(domain.ImageNames(), name) {
		return nil, domain.NewNotFoundError("image", name)
	}

	path := filepath.Join(s.dir, name)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.NewNotFoundError("image", name)
	}

	if err != nil {
		return nil, fmt.Errorf("stat image %q: %w", name, err)
	}

	if info.IsDir() {
		return nil, domain.NewNotFoundError("image", name)
	}

	return &domain.Image{Name: name, Path: path}, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "images" }

// Check reports whether the image directory is present. Individual files are
// resolved per request.
func (s *Store) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("images dir %s: %w", s.dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("images dir %s: not a directory", s.dir)
	}

	return nil
}
