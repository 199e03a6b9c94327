// Package mjpeg writes Motion JPEG AVI files without an external encoder.
package mjpeg

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/icza/mjpeg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Writer encodes each frame as a JPEG and appends it to an AVI container.
type Writer struct {
	aw         mjpeg.AviWriter
	outputPath string
	dims       config.VideoDimensions
	quality    int
	buf        bytes.Buffer
	frames     int
	closed     bool
}

// NewWriter creates the AVI file. The container stores an integer frame
// rate, so fps is rounded and never below 1.
func NewWriter(outputPath string, dims config.VideoDimensions, fps float64, quality int) (*Writer, error) {
	rate := int32(math.Max(1, math.Round(fps)))
	if float64(rate) != fps {
		logrus.WithFields(logrus.Fields{
			"requested": fps,
			"used":      rate,
		}).Warn("AVI frame rate rounded to an integer")
	}

	aw, err := mjpeg.New(outputPath, int32(dims.Width), int32(dims.Height), rate)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create video writer for %s", outputPath)
	}

	return &Writer{
		aw:         aw,
		outputPath: outputPath,
		dims:       dims,
		quality:    quality,
	}, nil
}

// WriteFrame appends one frame.
func (w *Writer) WriteFrame(img image.Image) error {
	if w.closed {
		return errors.New("write to closed frame writer")
	}

	size := img.Bounds().Size()
	if size.X != w.dims.Width || size.Y != w.dims.Height {
		return fmt.Errorf("frame %d is %dx%d, expected %s", w.frames, size.X, size.Y, w.dims)
	}

	w.buf.Reset()
	if err := jpeg.Encode(&w.buf, img, &jpeg.Options{Quality: w.quality}); err != nil {
		return errors.Wrapf(err, "failed to encode frame %d as JPEG", w.frames)
	}
	if err := w.aw.AddFrame(w.buf.Bytes()); err != nil {
		return errors.Wrapf(err, "failed to add frame %d", w.frames)
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int {
	return w.frames
}

// Close writes the AVI index and headers.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.aw.Close(); err != nil {
		return errors.Wrapf(err, "failed to finalize %s", w.outputPath)
	}
	return nil
}
