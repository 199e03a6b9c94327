package imageset

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeGradient writes a PNG whose red channel encodes x and green encodes y.
func writeGradient(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGradient(t, dir, "a.png", 8, 6),
		writeGradient(t, dir, "b.png", 8, 6),
	}

	set, err := Load(paths)
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, paths, set.Paths)
	assert.Equal(t, config.VideoDimensions{Width: 8, Height: 6}, set.MinDimensions())
}

func TestLoadEnumeratesAllMissing(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))

	paths := []string{
		filepath.Join(dir, "missing_01.png"),
		writeGradient(t, dir, "ok.png", 4, 4),
		garbage,
		filepath.Join(dir, "missing_02.png"),
	}

	set, err := Load(paths)
	require.Error(t, err)
	assert.Nil(t, set)

	var missingErr *MissingImagesError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{paths[0], garbage, paths[3]}, missingErr.Paths)
	assert.Contains(t, err.Error(), "could not load")
	assert.Contains(t, err.Error(), "missing_02.png")
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(nil)
	assert.Error(t, err)
}

func TestNormalizeCropsTopLeft(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGradient(t, dir, "wide.png", 12, 5),
		writeGradient(t, dir, "tall.png", 7, 9),
		writeGradient(t, dir, "big.png", 20, 20),
	}

	set, err := Load(paths)
	require.NoError(t, err)

	dims := set.Normalize()
	assert.Equal(t, config.VideoDimensions{Width: 7, Height: 5}, dims)

	for i, img := range set.Images {
		assert.Equal(t, image.Rect(0, 0, 7, 5), img.Bounds(), "image %d", i)

		// origin-anchored: pixel (x, y) still carries its source coordinates
		assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 7, A: 255}, img.NRGBAAt(0, 0))
		assert.Equal(t, color.NRGBA{R: 6, G: 4, B: 7, A: 255}, img.NRGBAAt(6, 4))
	}
}

func TestNormalizeSameSizeIsNoop(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeGradient(t, dir, "a.png", 4, 3),
		writeGradient(t, dir, "b.png", 4, 3),
	}

	set, err := Load(paths)
	require.NoError(t, err)
	first := set.Images[0]

	dims := set.Normalize()
	assert.Equal(t, config.VideoDimensions{Width: 4, Height: 3}, dims)
	assert.Same(t, first, set.Images[0])
}
