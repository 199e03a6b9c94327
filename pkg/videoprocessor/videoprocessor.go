package videoprocessor

import (
	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/ZacxDev/fogloop/internal/container"
	"github.com/ZacxDev/fogloop/internal/processor"
	"github.com/ZacxDev/fogloop/pkg/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LoopOptions defines options for rendering a crossfade loop
type LoopOptions struct {
	InputDir      string
	Pattern       string // printf pattern taking the 1-based image number
	Count         int
	InputPaths    []string // overrides InputDir/Pattern/Count when set
	OutputPath    string
	Format        types.ContainerFormat // inferred from OutputPath when empty
	FPS           float64
	TotalDuration float64 // in seconds
	Verbose       bool
}

// LoopResult describes a rendered loop
type LoopResult struct {
	OutputPath       string
	Format           types.ContainerFormat
	Width            int
	Height           int
	Images           int
	FramesPerSegment int
	FrameCount       int
	Duration         float64
}

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration   float64
	Width      int
	Height     int
	Codec      string
	FrameRate  float64
	FrameCount int
}

// FormatInfo describes a supported output container
type FormatInfo struct {
	Name        types.ContainerFormat
	Extension   string
	Description string
}

// DefaultLoopOptions returns the built-in defaults overridden by FOGLOOP_*
// environment variables.
func DefaultLoopOptions() (*LoopOptions, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return &LoopOptions{
		InputDir:      cfg.InputDir,
		Pattern:       cfg.Pattern,
		Count:         cfg.Count,
		OutputPath:    cfg.OutputPath,
		Format:        types.ContainerFormat(cfg.OutputFormat),
		FPS:           cfg.FPS,
		TotalDuration: cfg.TotalDuration,
		Verbose:       cfg.Verbose,
	}, nil
}

// RenderLoop renders a looping crossfade video from the configured images
func RenderLoop(opts *LoopOptions) (*LoopResult, error) {
	if opts == nil {
		return nil, errors.New("loop options are required")
	}

	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := &config.LoopOptions{
		InputDir:      opts.InputDir,
		Pattern:       opts.Pattern,
		Count:         opts.Count,
		InputPaths:    opts.InputPaths,
		OutputPath:    opts.OutputPath,
		OutputFormat:  string(opts.Format),
		FPS:           opts.FPS,
		TotalDuration: opts.TotalDuration,
		Verbose:       opts.Verbose,
	}

	rendered, err := processor.NewLooper(cfg).Process()
	if err != nil {
		return nil, err
	}

	return &LoopResult{
		OutputPath:       rendered.OutputPath,
		Format:           types.ContainerFormat(rendered.Format),
		Width:            rendered.Dimensions.Width,
		Height:           rendered.Dimensions.Height,
		Images:           rendered.Images,
		FramesPerSegment: rendered.FramesPerSegment,
		FrameCount:       rendered.FrameCount,
		Duration:         rendered.Duration,
	}, nil
}

// GetVideoMetadata retrieves metadata about a video file
func GetVideoMetadata(path string) (*VideoMetadata, error) {
	meta, err := processor.Inspect(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get video metadata")
	}
	return &VideoMetadata{
		Duration:   meta.Duration,
		Width:      meta.Width,
		Height:     meta.Height,
		Codec:      meta.Codec,
		FrameRate:  meta.FrameRate,
		FrameCount: meta.FrameCount,
	}, nil
}

// GetSupportedFormats returns the registered output containers
func GetSupportedFormats() []FormatInfo {
	names := processor.GetSupportedContainers()
	formats := make([]FormatInfo, 0, len(names))
	for _, name := range names {
		c, err := container.Get(name)
		if err != nil {
			continue
		}
		formats = append(formats, FormatInfo{
			Name:        types.ContainerFormat(name),
			Extension:   c.GetExtension(),
			Description: c.GetDescription(),
		})
	}
	return formats
}
