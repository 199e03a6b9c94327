package videoprocessor

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZacxDev/fogloop/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFogImages(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		img := image.NewNRGBA(image.Rect(0, 0, 10+i, 8))
		for p := 0; p < len(img.Pix); p += 4 {
			img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3] = uint8(i*20), 90, 200, 255
		}

		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("fog_%02d.png", i)))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
	}
}

func TestDefaultLoopOptions(t *testing.T) {
	opts, err := DefaultLoopOptions()
	require.NoError(t, err)

	assert.Equal(t, "fog_%02d.png", opts.Pattern)
	assert.Equal(t, 10, opts.Count)
	assert.Equal(t, 2.0, opts.FPS)
	assert.Equal(t, 120.0, opts.TotalDuration)
	assert.Equal(t, "fog_loop_10images.mp4", opts.OutputPath)
	assert.Empty(t, opts.Format)
}

func TestRenderLoopAVI(t *testing.T) {
	dir := t.TempDir()
	writeFogImages(t, dir, 10)

	opts, err := DefaultLoopOptions()
	require.NoError(t, err)
	opts.InputDir = dir
	opts.OutputPath = filepath.Join(dir, "fog_loop.avi")
	opts.TotalDuration = 20

	result, err := RenderLoop(opts)
	require.NoError(t, err)

	assert.Equal(t, types.ContainerFormatAVI, result.Format)
	assert.Equal(t, 11, result.Width)
	assert.Equal(t, 8, result.Height)
	assert.Equal(t, 4, result.FramesPerSegment)
	assert.Equal(t, 40, result.FrameCount)
	assert.Equal(t, 20.0, result.Duration)

	_, err = os.Stat(result.OutputPath)
	assert.NoError(t, err)
}

func TestRenderLoopMissingImage(t *testing.T) {
	dir := t.TempDir()
	writeFogImages(t, dir, 9)

	opts, err := DefaultLoopOptions()
	require.NoError(t, err)
	opts.InputDir = dir
	opts.OutputPath = filepath.Join(dir, "fog_loop.avi")

	_, err = RenderLoop(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fog_10.png")

	_, err = os.Stat(opts.OutputPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRenderLoopNilOptions(t *testing.T) {
	_, err := RenderLoop(nil)
	assert.Error(t, err)
}

func TestGetSupportedFormats(t *testing.T) {
	formats := GetSupportedFormats()
	require.Len(t, formats, 3)

	assert.Equal(t, types.ContainerFormatAVI, formats[0].Name)
	assert.Equal(t, ".avi", formats[0].Extension)
	assert.Equal(t, types.ContainerFormatMP4, formats[1].Name)
	assert.Equal(t, types.ContainerFormatWebM, formats[2].Name)
	for _, f := range formats {
		assert.NotEmpty(t, f.Description)
	}
}

func TestGetVideoMetadataMissingFile(t *testing.T) {
	_, err := GetVideoMetadata(filepath.Join(t.TempDir(), "nope.mp4"))
	assert.Error(t, err)
}
