package container

import (
	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/ZacxDev/fogloop/internal/mjpeg"
)

// AVI needs no ffmpeg binary.
type AVI struct{}

func init() {
	Register(&AVI{})
}

func (c *AVI) GetName() string {
	return "avi"
}

func (c *AVI) GetExtension() string {
	return ".avi"
}

func (c *AVI) GetDescription() string {
	return "Motion JPEG in AVI, encoded in-process"
}

func (c *AVI) NewWriter(outputPath string, dims config.VideoDimensions, fps float64) (FrameWriter, error) {
	w, err := mjpeg.NewWriter(outputPath, dims, fps, config.JPEGQuality)
	if err != nil {
		return nil, err
	}
	return w, nil
}
