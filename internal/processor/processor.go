package processor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/ZacxDev/fogloop/internal/container"
	"github.com/ZacxDev/fogloop/internal/ffmpeg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Looper renders a crossfade loop from a set of still images
type Looper struct {
	opts      *config.LoopOptions
	container container.Container
}

// NewLooper creates a new loop renderer
func NewLooper(opts *config.LoopOptions) *Looper {
	return &Looper{
		opts: opts,
	}
}

// GetSupportedContainers returns a list of supported output formats
func GetSupportedContainers() []string {
	return container.GetSupportedContainers()
}

// Inspect probes a rendered video
func Inspect(path string) (*ffmpeg.VideoMetadata, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WithStack(err)
	}
	return ffmpeg.GetVideoMetadata(path)
}

// ensureOutputPath gives path the container's extension and creates its
// parent directory.
func ensureOutputPath(path string, c container.Container) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), c.GetExtension()) {
		path = ffmpeg.EnsureExtension(path, c.GetExtension())
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrapf(err, "failed to create directory %s", dir)
		}
		logrus.WithField("dir", dir).Debug("Ensured output directory")
	}

	return path, nil
}
