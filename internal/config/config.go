package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// LoopOptions defines options for rendering a crossfade loop
type LoopOptions struct {
	InputDir      string `env:"INPUT_DIR" envDefault:"."`
	Pattern       string `env:"PATTERN" envDefault:"fog_%02d.png"`
	Count         int    `env:"COUNT" envDefault:"10"`
	InputPaths    []string
	OutputPath    string  `env:"OUTPUT" envDefault:"fog_loop_10images.mp4"`
	OutputFormat  string  `env:"FORMAT"` // "mp4", "webm" or "avi"; inferred from OutputPath when empty
	FPS           float64 `env:"FPS" envDefault:"2"`
	TotalDuration float64 `env:"DURATION" envDefault:"120"` // seconds
	Verbose       bool    `env:"VERBOSE"`
}

type VideoDimensions struct {
	Width  int
	Height int
}

func (d VideoDimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Even reports whether both sides are divisible by two, as 4:2:0 chroma subsampling requires.
func (d VideoDimensions) Even() bool {
	return d.Width%2 == 0 && d.Height%2 == 0
}

const (
	// Defaults for the fog animation
	DefaultInputDir      = "."
	DefaultPattern       = "fog_%02d.png"
	DefaultImageCount    = 10
	DefaultFPS           = 2
	DefaultTotalDuration = 120 // 2 minutes
	DefaultOutputPath    = "fog_loop_10images.mp4"

	// Environment variable prefix for LoopOptions
	EnvPrefix = "FOGLOOP_"

	// JPEG quality for MJPEG frames
	JPEGQuality = 90
)

// Default returns options populated with the built-in constants only.
func Default() *LoopOptions {
	return &LoopOptions{
		InputDir:      DefaultInputDir,
		Pattern:       DefaultPattern,
		Count:         DefaultImageCount,
		OutputPath:    DefaultOutputPath,
		FPS:           DefaultFPS,
		TotalDuration: DefaultTotalDuration,
	}
}

// Load returns the defaults overridden by FOGLOOP_* environment variables.
func Load() (*LoopOptions, error) {
	opts := &LoopOptions{}
	if err := env.ParseWithOptions(opts, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	return opts, nil
}

// ImagePaths returns the ordered list of input images. Explicit InputPaths
// win over the numbered pattern.
func (o *LoopOptions) ImagePaths() []string {
	if len(o.InputPaths) > 0 {
		paths := make([]string, len(o.InputPaths))
		copy(paths, o.InputPaths)
		return paths
	}

	paths := make([]string, 0, o.Count)
	for i := 1; i <= o.Count; i++ {
		paths = append(paths, filepath.Join(o.InputDir, fmt.Sprintf(o.Pattern, i)))
	}
	return paths
}

// Validate checks the option values. It does not touch the filesystem.
func (o *LoopOptions) Validate() error {
	if o.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", o.FPS)
	}
	if o.TotalDuration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", o.TotalDuration)
	}
	if len(o.InputPaths) == 0 && o.Count < 1 {
		return fmt.Errorf("at least one input image is required, got count %d", o.Count)
	}
	if o.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}
