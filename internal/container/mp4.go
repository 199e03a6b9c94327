package container

import (
	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/ZacxDev/fogloop/internal/ffmpeg"
)

type MP4 struct{}

func init() {
	Register(&MP4{})
}

func (c *MP4) GetName() string {
	return "mp4"
}

func (c *MP4) GetExtension() string {
	return ".mp4"
}

func (c *MP4) GetDescription() string {
	return "H.264 (avc1) in MP4, encoded by ffmpeg"
}

func (c *MP4) NewWriter(outputPath string, dims config.VideoDimensions, fps float64) (FrameWriter, error) {
	w, err := ffmpeg.NewFrameWriter(outputPath, dims, fps, ffmpeg.GetCodecSettings("mp4"))
	if err != nil {
		return nil, err
	}
	return w, nil
}
