package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSupportedFormats(t *testing.T) {
	out := formatSupportedFormats()

	assert.Contains(t, out, "- avi (.avi)")
	assert.Contains(t, out, "- mp4 (.mp4)")
	assert.Contains(t, out, "- webm (.webm)")
	assert.Equal(t, "avi, mp4, webm", supportedFormatNames())
}

func TestRootCommandRendersAVI(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 3; i++ {
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("frame_%d.png", i)))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 6, 6))))
		require.NoError(t, f.Close())
	}
	output := filepath.Join(dir, "loop.avi")

	rootCmd.SetArgs([]string{
		"--input-dir", dir,
		"--pattern", "frame_%d.png",
		"--count", "3",
		"--duration", "6",
		"--output", output,
	})
	require.NoError(t, rootCmd.Execute())

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
