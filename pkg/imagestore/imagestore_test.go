package imagestore_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cookbook/pkg/imagestore"

	"github.com/stretchr/testify/assert"
)

func pngPayload(t *testing.T) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestRecipeImagePath(t *testing.T) {
	pattern := `^uploads/recipe/[0-9a-f-]{36}\.png$`

	first := imagestore.RecipeImagePath("myimage.png")
	second := imagestore.RecipeImagePath("myimage.png")

	assert.Regexp(t, pattern, first)
	assert.Regexp(t, pattern, second)
	assert.NotEqual(t, first, second, "same filename never produces the same path")
	assert.NotContains(t, first, "myimage", "client filename never reaches storage")
}

func TestRecipeImagePathKeepsExtension(t *testing.T) {
	// The extension is everything after the last dot of the client filename.
	path := imagestore.RecipeImagePath("holiday.photo.jpg")
	assert.True(t, strings.HasSuffix(path, ".jpg"))
	assert.NotContains(t, path, "holiday")
}

func TestSaveRecipeImage(t *testing.T) {
	root := t.TempDir()
	store := imagestore.New(root)

	path, err := store.SaveRecipeImage("photo.png", pngPayload(t))

	assert.NoError(t, err)
	assert.Regexp(t, `^uploads/recipe/.+\.png$`, path)

	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRemoveRecipeImage(t *testing.T) {
	root := t.TempDir()
	store := imagestore.New(root)

	path, err := store.SaveRecipeImage("photo.png", pngPayload(t))
	assert.NoError(t, err)

	assert.NoError(t, store.Remove(path))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))

	// Removing it again is a no-op.
	assert.NoError(t, store.Remove(path))
}

func TestSaveRecipeImageRejectsNonImage(t *testing.T) {
	root := t.TempDir()
	store := imagestore.New(root)

	// Image extension but garbage payload.
	_, err := store.SaveRecipeImage("notes.png", strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, imagestore.ErrInvalidImage)

	// Valid payload but unsupported extension.
	_, err = store.SaveRecipeImage("photo.exe", pngPayload(t))
	assert.ErrorIs(t, err, imagestore.ErrInvalidImage)

	// No extension at all.
	_, err = store.SaveRecipeImage("photo", pngPayload(t))
	assert.ErrorIs(t, err, imagestore.ErrInvalidImage)

	entries, err := os.ReadDir(root)
	assert.NoError(t, err)
	assert.Empty(t, entries, "nothing is persisted for rejected uploads")
}
