// Package imageset loads the ordered still images of a loop and crops them
// to a shared size.
package imageset

import (
	"fmt"
	"image"

	"github.com/ZacxDev/fogloop/internal/config"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	// Extra decoders; imaging already registers bmp and tiff.
	_ "golang.org/x/image/webp"
)

// MissingImagesError lists every input that could not be opened or decoded,
// in input order.
type MissingImagesError struct {
	Paths []string
}

func (e *MissingImagesError) Error() string {
	return fmt.Sprintf("could not load: %v", e.Paths)
}

// Set is an ordered sequence of images. Order defines the transitions,
// including the wraparound from the last image to the first.
type Set struct {
	Paths  []string
	Images []*image.NRGBA
}

// Load decodes every path eagerly. If any of them fails, a *MissingImagesError
// naming all failures is returned and no Set is produced.
func Load(paths []string) (*Set, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input images provided")
	}

	set := &Set{
		Paths:  make([]string, 0, len(paths)),
		Images: make([]*image.NRGBA, 0, len(paths)),
	}
	var missing []string

	for _, path := range paths {
		img, err := imaging.Open(path)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  path,
				"error": err,
			}).Debug("Failed to load image")
			missing = append(missing, path)
			continue
		}

		nrgba := imaging.Clone(img)
		logrus.WithFields(logrus.Fields{
			"path":   path,
			"width":  nrgba.Bounds().Dx(),
			"height": nrgba.Bounds().Dy(),
		}).Debug("Loaded image")

		set.Paths = append(set.Paths, path)
		set.Images = append(set.Images, nrgba)
	}

	if len(missing) > 0 {
		return nil, errors.WithStack(&MissingImagesError{Paths: missing})
	}

	return set, nil
}

// Len returns the number of images in the set.
func (s *Set) Len() int {
	return len(s.Images)
}

// MinDimensions returns the smallest width and the smallest height across the
// set. The two minimums may come from different images.
func (s *Set) MinDimensions() config.VideoDimensions {
	var dims config.VideoDimensions
	for i, img := range s.Images {
		b := img.Bounds()
		if i == 0 || b.Dx() < dims.Width {
			dims.Width = b.Dx()
		}
		if i == 0 || b.Dy() < dims.Height {
			dims.Height = b.Dy()
		}
	}
	return dims
}

// Normalize crops every image to the top-left MinDimensions region and
// returns those dimensions.
func (s *Set) Normalize() config.VideoDimensions {
	dims := s.MinDimensions()
	for i, img := range s.Images {
		b := img.Bounds()
		if b.Dx() == dims.Width && b.Dy() == dims.Height && b.Min == (image.Point{}) {
			continue
		}
		s.Images[i] = imaging.CropAnchor(img, dims.Width, dims.Height, imaging.TopLeft)
	}

	logrus.WithFields(logrus.Fields{
		"images":     s.Len(),
		"dimensions": dims.String(),
	}).Debug("Cropped images to common size")

	return dims
}
