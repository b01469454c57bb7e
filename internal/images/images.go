// Package images stores uploaded dish images on the local filesystem
// under one directory per menu category, served back at /images/.
package images

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// URLPrefix is the public path under which stored images are served.
const URLPrefix = "/images/"

// Store is the on-disk image file store.
type Store struct {
	dir string
}

// New creates the images directory if needed and returns a store rooted
// at it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating images directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes data under <dir>/<TYPE>/<name>. If the name is already
// taken, a timestamp suffix is inserted before the extension so an
// upload never overwrites an existing image. Returns the public URL
// path of the stored file.
func (s *Store) Save(foodType, name string, data []byte) (string, error) {
	folder := strings.ToUpper(strings.TrimSpace(foodType))
	if folder == "" {
		return "", fmt.Errorf("missing food type")
	}

	// Base strips any client-supplied directory components.
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	destDir := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating category directory: %w", err)
	}

	dest := filepath.Join(destDir, name)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		name = fmt.Sprintf("%s-%d%s", base, time.Now().UnixMilli(), ext)
		dest = filepath.Join(destDir, name)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("writing image file: %w", err)
	}

	return path.Join(URLPrefix, folder, name), nil
}

// Remove deletes the file behind an image URL. The URL may be absolute
// or a bare /images/ path; everything up to the /images/ segment is
// ignored. A file that is already gone is not an error.
func (s *Store) Remove(imageURL string) error {
	idx := strings.Index(imageURL, URLPrefix)
	if idx == -1 {
		return fmt.Errorf("not an image URL: %q", imageURL)
	}
	rel := imageURL[idx+len(URLPrefix):]

	// Resolve and keep the target inside the images directory.
	target := filepath.Join(s.dir, filepath.FromSlash(path.Clean("/"+rel)))
	if !strings.HasPrefix(target, s.dir+string(filepath.Separator)) {
		return fmt.Errorf("image path escapes store: %q", imageURL)
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing image file: %w", err)
	}
	return nil
}
