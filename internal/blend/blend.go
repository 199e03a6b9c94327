// Package blend synthesizes crossfade frames between consecutive images of a
// loop, including the wraparound from the last image back to the first.
package blend

import (
	"fmt"
	"image"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// FramesPerSegment returns floor(totalDuration / numImages * fps).
func FramesPerSegment(totalDuration float64, numImages int, fps float64) int {
	if numImages <= 0 || totalDuration <= 0 || fps <= 0 {
		return 0
	}
	segmentDuration := totalDuration / float64(numImages)
	return int(math.Floor(segmentDuration * fps))
}

// Alpha is the weight of the next image for frame f of a segment. It runs
// from 0 to 1 inclusive when framesPerSegment > 1.
func Alpha(frame, framesPerSegment int) float64 {
	return float64(frame) / float64(max(framesPerSegment-1, 1))
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mix writes src*(1-alpha) + next*alpha into dst, per color channel. Results
// are clamped to [0, 255] and truncated. dst is fully opaque afterwards.
func Mix(dst, src, next *image.NRGBA, alpha float64) error {
	size := dst.Bounds().Size()
	if src.Bounds().Size() != size || next.Bounds().Size() != size {
		return fmt.Errorf("dimension mismatch: dst %v, src %v, next %v",
			size, src.Bounds().Size(), next.Bounds().Size())
	}

	for y := 0; y < size.Y; y++ {
		d := dst.Pix[y*dst.Stride : y*dst.Stride+size.X*4]
		a := src.Pix[y*src.Stride : y*src.Stride+size.X*4]
		b := next.Pix[y*next.Stride : y*next.Stride+size.X*4]
		for i := 0; i < len(d); i += 4 {
			for c := 0; c < 3; c++ {
				av := float64(a[i+c])
				v := av + (float64(b[i+c])-av)*alpha
				d[i+c] = uint8(clamp(v, 0, 255))
			}
			d[i+3] = 0xff
		}
	}
	return nil
}

// Frame is one synthesized frame. Image is reused between callbacks and is
// only valid until the callback returns.
type Frame struct {
	Segment int // index of the source image
	Index   int // frame index within the segment
	Number  int // frame index within the whole loop
	Alpha   float64
	Image   *image.NRGBA
}

// Synthesizer produces the frames of a loop one at a time.
type Synthesizer struct {
	images           []*image.NRGBA
	framesPerSegment int
	frame            *image.NRGBA
}

// NewSynthesizer requires at least one image, all of the same size, and a
// positive frame count per segment.
func NewSynthesizer(images []*image.NRGBA, framesPerSegment int) (*Synthesizer, error) {
	if len(images) == 0 {
		return nil, errors.New("no images to blend")
	}
	if framesPerSegment <= 0 {
		return nil, fmt.Errorf("segment too short: %d frames per segment", framesPerSegment)
	}

	size := images[0].Bounds().Size()
	for i, img := range images[1:] {
		if img.Bounds().Size() != size {
			return nil, fmt.Errorf("image %d is %v, expected %v", i+1, img.Bounds().Size(), size)
		}
	}

	return &Synthesizer{
		images:           images,
		framesPerSegment: framesPerSegment,
		frame:            image.NewNRGBA(image.Rect(0, 0, size.X, size.Y)),
	}, nil
}

// FramesPerSegment returns the number of frames in each transition.
func (s *Synthesizer) FramesPerSegment() int {
	return s.framesPerSegment
}

// TotalFrames returns len(images) * framesPerSegment.
func (s *Synthesizer) TotalFrames() int {
	return len(s.images) * s.framesPerSegment
}

// Run calls fn for every frame in order: segment 0 first, the wraparound
// segment from the last image to the first one last. It stops at the first
// error returned by fn.
func (s *Synthesizer) Run(fn func(f Frame) error) error {
	n := len(s.images)
	number := 0
	for i := 0; i < n; i++ {
		src := s.images[i]
		next := s.images[(i+1)%n]
		for f := 0; f < s.framesPerSegment; f++ {
			alpha := Alpha(f, s.framesPerSegment)
			if err := Mix(s.frame, src, next, alpha); err != nil {
				return errors.Wrapf(err, "segment %d frame %d", i, f)
			}
			if err := fn(Frame{
				Segment: i,
				Index:   f,
				Number:  number,
				Alpha:   alpha,
				Image:   s.frame,
			}); err != nil {
				return err
			}
			number++
		}
	}
	return nil
}
