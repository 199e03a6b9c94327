package processor

import (
	"github.com/ZacxDev/fogloop/internal/blend"
	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/ZacxDev/fogloop/internal/container"
	"github.com/ZacxDev/fogloop/internal/imageset"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type RenderedLoop struct {
	OutputPath       string
	Format           string
	Dimensions       config.VideoDimensions
	Images           int
	FramesPerSegment int
	FrameCount       int
	Duration         float64 // seconds of video actually written
}

// Process loads, validates, crops, blends and writes the loop. Images are
// validated before the output writer is opened, so a missing input leaves no
// output file behind.
func (l *Looper) Process() (*RenderedLoop, error) {
	if err := l.opts.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	c, err := container.Resolve(l.opts.OutputFormat, l.opts.OutputPath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	l.container = c

	set, err := imageset.Load(l.opts.ImagePaths())
	if err != nil {
		return nil, err
	}

	dims := set.Normalize()
	framesPerSegment := blend.FramesPerSegment(l.opts.TotalDuration, set.Len(), l.opts.FPS)

	synth, err := blend.NewSynthesizer(set.Images, framesPerSegment)
	if err != nil {
		return nil, errors.Wrapf(err, "%gs over %d images at %g fps", l.opts.TotalDuration, set.Len(), l.opts.FPS)
	}

	outputPath, err := ensureOutputPath(l.opts.OutputPath, c)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"images":             set.Len(),
		"dimensions":         dims.String(),
		"fps":                l.opts.FPS,
		"frames_per_segment": framesPerSegment,
		"total_frames":       synth.TotalFrames(),
		"format":             c.GetName(),
		"output":             outputPath,
	}).Debug("Rendering loop")

	writer, err := c.NewWriter(outputPath, dims, l.opts.FPS)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open video writer")
	}

	written := 0
	err = synth.Run(func(f blend.Frame) error {
		if err := writer.WriteFrame(f.Image); err != nil {
			return err
		}
		written++

		if f.Index == framesPerSegment-1 {
			next := (f.Segment + 1) % set.Len()
			logrus.WithFields(logrus.Fields{
				"from":   set.Paths[f.Segment],
				"to":     set.Paths[next],
				"frames": written,
			}).Debug("Completed transition")
		}
		return nil
	})
	if err != nil {
		if closeErr := writer.Close(); closeErr != nil {
			logrus.WithError(closeErr).WithField("output", outputPath).Warn("Failed to close video writer")
		}
		return nil, errors.Wrapf(err, "failed writing frame %d", written)
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize video")
	}

	return &RenderedLoop{
		OutputPath:       outputPath,
		Format:           c.GetName(),
		Dimensions:       dims,
		Images:           set.Len(),
		FramesPerSegment: framesPerSegment,
		FrameCount:       written,
		Duration:         float64(written) / l.opts.FPS,
	}, nil
}
