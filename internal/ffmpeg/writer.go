package ffmpeg

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"

	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FrameWriter streams raw RGBA frames into an ffmpeg process over stdin.
// Only the frame being written is held in memory.
type FrameWriter struct {
	outputPath string
	dims       config.VideoDimensions
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	frames     int
	closed     bool
}

// PixelFormat picks the encoder pixel format. yuv420p is the widely playable
// choice but needs even dimensions, so odd sizes fall back to yuv444p.
func PixelFormat(dims config.VideoDimensions) string {
	if dims.Even() {
		return "yuv420p"
	}
	return "yuv444p"
}

// BuildStream returns the ffmpeg graph that reads rawvideo from stdin and
// encodes it to outputPath.
func BuildStream(outputPath string, dims config.VideoDimensions, fps float64, settings CodecSettings) *ffmpeg.Stream {
	input := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         dims.String(),
		"framerate": fps,
	})

	outputKwargs := ffmpeg.KwArgs{
		"c:v":     settings.VideoCodec,
		"pix_fmt": PixelFormat(dims),
		"r":       fps,
		"threads": GetOptimalThreadCount(),
	}

	// Apply format-specific encoder settings
	for k, v := range settings.EncoderPresets[LoopPreset] {
		outputKwargs[k] = v
	}

	return input.Output(outputPath, outputKwargs).OverWriteOutput()
}

// NewFrameWriter starts ffmpeg and returns a writer for frames of exactly dims.
func NewFrameWriter(outputPath string, dims config.VideoDimensions, fps float64, settings CodecSettings) (*FrameWriter, error) {
	stream := BuildStream(outputPath, dims, fps, settings)

	logrus.WithFields(logrus.Fields{
		"command": stream.String(),
	}).Debug("Starting ffmpeg")

	return startFrameWriter(stream.Compile(), outputPath, dims)
}

func startFrameWriter(cmd *exec.Cmd, outputPath string, dims config.VideoDimensions) (*FrameWriter, error) {
	w := &FrameWriter{
		outputPath: outputPath,
		dims:       dims,
		cmd:        cmd,
	}

	w.cmd.Stdout = nil
	w.cmd.Stderr = &w.stderr

	stdin, err := w.cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open ffmpeg stdin")
	}
	w.stdin = stdin

	if err := w.cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "failed to start ffmpeg")
	}

	return w, nil
}

// WriteFrame sends one frame to the encoder. A failed write means ffmpeg has
// gone away, so the writer is closed and ffmpeg's own error is reported.
func (w *FrameWriter) WriteFrame(img image.Image) error {
	if w.closed {
		return errors.New("write to closed frame writer")
	}

	size := img.Bounds().Size()
	if size.X != w.dims.Width || size.Y != w.dims.Height {
		return fmt.Errorf("frame %d is %dx%d, expected %s", w.frames, size.X, size.Y, w.dims)
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != size.X*4 {
		nrgba = imaging.Clone(img)
	}

	if _, err := w.stdin.Write(nrgba.Pix[:size.Y*nrgba.Stride]); err != nil {
		// stderr is only safe to read once Wait has returned
		if closeErr := w.Close(); closeErr != nil {
			return errors.Wrapf(err, "failed to write frame %d: %v", w.frames, closeErr)
		}
		return errors.Wrapf(err, "failed to write frame %d", w.frames)
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (w *FrameWriter) Frames() int {
	return w.frames
}

// Close flushes the encoder and waits for ffmpeg to finalize the file. The
// process is always waited on, even when closing stdin fails.
func (w *FrameWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	closeErr := w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg failed for %s: %v: %s", w.outputPath, err, w.stderr.String())
	}
	if closeErr != nil {
		return errors.Wrap(closeErr, "failed to close ffmpeg stdin")
	}

	logrus.WithFields(logrus.Fields{
		"path":   w.outputPath,
		"frames": w.frames,
	}).Debug("ffmpeg finished")
	return nil
}
