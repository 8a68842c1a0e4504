package imagestore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ErrInvalidImage marks uploads that cannot be decoded as an image or
// carry an unsupported file extension.
var ErrInvalidImage = errors.New("payload is not a supported image")

// Store persists uploaded images on the local filesystem under a media root.
type Store struct {
	root string
}

// New creates a Store rooted at the given media directory.
func New(root string) *Store {
	return &Store{
		root: root,
	}
}

// RecipeImagePath builds the storage path for a recipe image upload:
// uploads/recipe/<token>.<ext>, where the token is a fresh random UUID.
// The token never derives from the client filename or the payload, so two
// uploads of the same file never collide and the original name never
// reaches storage.
func RecipeImagePath(filename string) string {
	return "uploads/recipe/" + uuid.New().String() + "." + extension(filename)
}

// extension returns the substring after the last '.' of the filename,
// empty when there is no dot.
func extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return filename[i+1:]
}

// SaveRecipeImage validates and persists an uploaded image, returning its
// path relative to the media root. The payload is fully decoded and
// re-encoded in memory first; nothing touches the disk until it has
// proven to be an image.
func (s *Store) SaveRecipeImage(filename string, r io.Reader) (string, error) {
	format, err := imaging.FormatFromExtension(extension(filename))
	if err != nil {
		return "", fmt.Errorf("%w: unsupported extension in %q", ErrInvalidImage, filename)
	}

	img, err := imaging.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	path := RecipeImagePath(filename)
	full := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(full, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return path, nil
}

// Remove deletes a stored image by its path relative to the media root.
// A file that is already gone is not an error.
func (s *Store) Remove(path string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(path)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}
