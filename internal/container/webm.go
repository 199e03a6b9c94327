package container

import (
	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/ZacxDev/fogloop/internal/ffmpeg"
)

type WebM struct{}

func init() {
	Register(&WebM{})
}

func (c *WebM) GetName() string {
	return "webm"
}

func (c *WebM) GetExtension() string {
	return ".webm"
}

func (c *WebM) GetDescription() string {
	return "VP9 in WebM, encoded by ffmpeg"
}

func (c *WebM) NewWriter(outputPath string, dims config.VideoDimensions, fps float64) (FrameWriter, error) {
	w, err := ffmpeg.NewFrameWriter(outputPath, dims, fps, ffmpeg.GetCodecSettings("webm"))
	if err != nil {
		return nil, err
	}
	return w, nil
}
